package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/connect-cli/internal/adapters/driving/httpserver"
	"github.com/custodia-labs/connect-cli/internal/core/services"
	"github.com/custodia-labs/connect-cli/internal/web"
)

// defaultPort is used when neither --port nor server.port in the config
// file is set.
const defaultPort = 4310

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the browser dashboard",
	Long: `Start the local dashboard server.

The dashboard lists every catalog connector with its install and auth
state, saves API keys, and drives browser OAuth flows.`,
	RunE: runServe,
}

var servePort int

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (default from config, then 4310)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	port := servePort
	if port == 0 {
		port = configStore.GetInt("server.port")
	}
	if port == 0 {
		// Not pinned by flag or config: fall forward when the default
		// port is already taken.
		free, err := services.FindAvailablePort(defaultPort, defaultPort+20)
		if err != nil {
			return err
		}
		port = free
	}

	// Pick up connector installs without a restart.
	connectorCatalog.Watch()
	defer connectorCatalog.Close()

	server := httpserver.New(port, statusService, oauthService, credentialService, eventStore, web.Assets())

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Dashboard running at %s\n", server.BaseURL())
	return server.Start(ctx)
}
