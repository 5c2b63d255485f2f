package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command. Without a subcommand it runs the server.
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()
	var serverFlags serverOptions

	rootCmd := &cobra.Command{
		Use:   "sitecms",
		Short: "Esports organization site and content admin",
		Long: `sitecms serves the organization's public site, its read-only content API
and the session-authenticated admin panel.

Run without a subcommand (or with "serve") to start the server. The news,
players, products and health commands query a running server's public API.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			client = NewClient(cfg.ServerURL)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), serverFlags.options(cmd))
		},
		SilenceUsage: true,
	}

	// Client flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL for client commands (env: SITECMS_SERVER)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")

	serverFlags.register(rootCmd.Flags())

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newSeedCmd())
	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newNewsCmd())
	rootCmd.AddCommand(newPlayersCmd())
	rootCmd.AddCommand(newProductsCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
