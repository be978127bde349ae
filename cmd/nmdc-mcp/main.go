package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/roivaz/nmdc-mcp/internal/config"
	"github.com/roivaz/nmdc-mcp/internal/logging"
	"github.com/roivaz/nmdc-mcp/internal/mcp"
)

var rootCmd = &cobra.Command{
	Use:           "nmdc-mcp",
	Short:         "MCP server exposing NMDC biosample and data object searches",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          serve,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server on the configured transport (default stdio)",
	RunE:  serve,
}

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Print the tool catalog, including inactive endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := mcp.CatalogYAML()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func main() {
	flags := rootCmd.PersistentFlags()
	flags.String("api-url", config.DefaultAPIURL, "NMDC runtime API base URL")
	flags.Duration("timeout", config.DefaultRequestTimeout, "Timeout for each NMDC API request")
	flags.String("transport", "stdio", "MCP transport: stdio or http")
	flags.String("http-addr", "127.0.0.1:8000", "Listen address for the http transport")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")

	_ = viper.BindPFlag(config.KeyAPIURL, flags.Lookup("api-url"))
	_ = viper.BindPFlag(config.KeyRequestTimeout, flags.Lookup("timeout"))
	_ = viper.BindPFlag(config.KeyTransport, flags.Lookup("transport"))
	_ = viper.BindPFlag(config.KeyHTTPAddr, flags.Lookup("http-addr"))
	_ = viper.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))

	config.Init(rootCmd)
	rootCmd.AddCommand(serveCmd, toolsCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("nmdc-mcp: %v", err)
	}
}

func serve(cmd *cobra.Command, args []string) error {
	logger := logging.New(logging.ForLevel(config.LogLevel())).WithName("nmdc-mcp")
	srv := mcp.New(mcp.DefaultConfig(logger))

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return srv.Serve(ctx)
}
