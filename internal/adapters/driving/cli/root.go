// Package cli implements the connect command tree. Commands drive the
// same core services as the dashboard façade; nothing here speaks HTTP
// to its own process.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/connect-cli/internal/adapters/driven/catalog"
	configfile "github.com/custodia-labs/connect-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/connect-cli/internal/adapters/driven/oauth"
	storagefile "github.com/custodia-labs/connect-cli/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/connect-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/connect-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/connect-cli/internal/core/ports/driven"
	"github.com/custodia-labs/connect-cli/internal/core/ports/driving"
	"github.com/custodia-labs/connect-cli/internal/core/services"
	"github.com/custodia-labs/connect-cli/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "connect",
	Short: "Manage authentication for installed API connectors",
	Long: `Connect tracks configuration and authentication state for a catalog of
independently-installable API connectors: API keys, bearer tokens, and
full OAuth 2.0 authorization flows.

Credentials are stored per connector and per profile under ~/.connect.
Run 'connect serve' to open the browser dashboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verboseFlag)
		return initServices()
	},
}

// Persistent flags.
var (
	verboseFlag bool
	homeFlag    string
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&homeFlag, "home", "", "Override the connect home directory (default ~/.connect)")
}

// Services wired once per invocation.
var (
	configStore       driven.ConfigStore
	credentialStore   *storagefile.CredentialStore
	connectorCatalog  *catalog.Catalog
	eventStore        driven.EventStore
	statusService     driving.StatusService
	oauthService      driving.OAuthService
	credentialService driving.CredentialService
)

// Execute runs the root command. Errors are printed as styled lines and
// exit non-zero.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

// initServices wires stores, adapters, and core services. The event store
// is optional: a failure there degrades to no activity log, not a dead CLI.
func initServices() error {
	if statusService != nil {
		return nil
	}

	store, err := configfile.NewConfigStore(homeFlag)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	configStore = store

	home := homeFlag
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		home = filepath.Join(userHome, ".connect")
	}

	credentialStore, err = storagefile.NewCredentialStore(home)
	if err != nil {
		return fmt.Errorf("open credential store: %w", err)
	}

	connectorsDir := configStore.GetString("paths.connectors")
	if connectorsDir == "" {
		connectorsDir = filepath.Join(home, "connectors")
	}
	connectorCatalog = catalog.New(connectorsDir)

	if events, err := sqlite.NewEventStore(filepath.Join(home, "data")); err != nil {
		logger.Warn("event log unavailable: %v", err)
	} else {
		eventStore = events
	}

	classifier := services.NewClassifier(connectorCatalog)
	statusService = services.NewStatusService(classifier, credentialStore, connectorCatalog)
	oauthService = services.NewOAuthFlow(
		classifier,
		credentialStore,
		memory.NewStateStore(),
		oauth.NewExchanger(),
		eventStore,
	)
	credentialService = services.NewCredentialService(classifier, credentialStore, eventStore)
	return nil
}
