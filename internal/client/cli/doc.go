// Package cli provides the interactive settings client.
//
// It wires configuration, the local session store, the identity service
// client and an interactive REPL around the profile controller. Typical
// flow: restore the saved session, refresh the profile from the service,
// start a background connectivity watcher and execute user commands.
//
// Key features:
//   - Login with an access token / Logout
//   - Show the profile and the edited name
//   - Edit the display name and save it
//   - Online / offline indicator in the prompt
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
