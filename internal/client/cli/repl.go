package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Show(ctx context.Context) error
	SetName(ctx context.Context, raw string) error
	Save(ctx context.Context) error
	Status(ctx context.Context) error
	Refresh(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the settings client.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. The loop exits on scanner EOF,
// when ctx is done or when the user types "exit" or "quit".
//
//	Not logged in:
//	  - help          : show available commands
//	  - login         : sign in with an access token
//	  - exit | quit   : leave the program
//
//	Logged in:
//	  - help          : show available commands
//	  - show          : show the profile and the edited name
//	  - name [text]   : edit the display name (kept verbatim, empty clears it)
//	  - save          : submit the edited name
//	  - status        : show the last submission result
//	  - refresh       : reload the profile from the service
//	  - logout        : drop the session
//	  - exit | quit   : leave the program
//
// Errors returned by command handlers are ignored here; handlers report
// their own errors.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("profile %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		if !a.isLoggedIn() && cmd != "help" && cmd != "login" && cmd != "exit" && cmd != "quit" {
			printlnFn("Not logged in. Use 'login' first.")
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: show, name <text>, save, status, refresh, logout, exit")
			} else {
				printlnFn("Available commands: login, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "show":
			_ = a.Show(ctx)

		case "name":
			_ = a.SetName(ctx, nameArgument(line))

		case "save":
			_ = a.Save(ctx)

		case "status":
			_ = a.Status(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

// nameArgument returns what follows the "name" command, keeping inner and
// trailing whitespace.
func nameArgument(line string) string {
	rest := strings.TrimLeft(line, " \t")
	rest = strings.TrimPrefix(rest, "name")
	if len(rest) > 0 && (rest[0] == ' ' || rest[0] == '\t') {
		rest = rest[1:]
	}
	return rest
}
