package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/gophprofile/internal/buildinfo"
	"github.com/dmitrijs2005/gophprofile/internal/logging"
	"github.com/dmitrijs2005/gophprofile/internal/server"
	"github.com/dmitrijs2005/gophprofile/internal/server/config"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "gophprofile-server",
		Short:        "Identity service for the account settings client",
		SilenceUsage: true,
	}
	flags := config.RegisterFlags(root.PersistentFlags())

	newApp := func(ctx context.Context) (*server.App, error) {
		cfg, err := flags.Load()
		if err != nil {
			return nil, err
		}
		logger, err := logging.New(cfg.LogBackend, cfg.LogLevel, os.Stdout)
		if err != nil {
			return nil, err
		}
		return server.NewApp(ctx, cfg, logger)
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()
			return app.Run(cmd.Context())
		},
	}

	var name, email string
	seed := &cobra.Command{
		Use:   "seed",
		Short: "Create a user and print its access token (persisted only with --database-dsn)",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			u, token, err := app.Users().Seed(cmd.Context(), name, email)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user %s (%s)\ntoken: %s\n", u.ID, u.Name, token)
			return nil
		},
	}
	seed.Flags().StringVar(&name, "name", "", "display name")
	seed.Flags().StringVar(&email, "email", "", "email address")
	_ = seed.MarkFlagRequired("email")

	version := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, args []string) {
			buildinfo.PrintBuildData(cmd.OutOrStdout())
		},
	}

	root.RunE = serve.RunE
	root.AddCommand(serve, seed, version)
	return root
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
