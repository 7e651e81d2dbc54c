// Package main implements the checkin terminal client for the DMAFB
// workplace wellness platform.
package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dmafb/checkin/internal/api"
	"github.com/dmafb/checkin/internal/cache"
	"github.com/dmafb/checkin/internal/config"
	"github.com/dmafb/checkin/internal/logging"
	"github.com/dmafb/checkin/internal/storage"
	"github.com/dmafb/checkin/internal/ui"
)

var (
	// configPath overrides the default config file location
	configPath string
	// serverURL overrides the configured API base URL
	serverURL string
	// version information
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "checkin",
	Short: "Terminal client for DMAFB wellness check-ins",
	Long: `checkin is a terminal client for the DMAFB workplace wellness platform.

Run it without arguments to open the interactive interface: a home dashboard
with your check-in trend, the survey list, a paged survey-taking flow, and
your profile. Subcommands cover non-interactive use.`,
	Version: version,
	RunE:    runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/checkin/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "API base URL override")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(surveysCmd)
	rootCmd.AddCommand(whoamiCmd)
}

// runtime bundles the wired collaborators shared by every command.
type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *storage.Store
	client *api.Client
	lists  *cache.SurveyList
	flush  func()
}

// setup loads config and wires the client, store, and logger. The returned
// close function releases the store and flushes logs.
func setup() (*runtime, func(), error) {
	if err := config.EnsureDataDir(); err != nil {
		return nil, nil, err
	}

	cfg, err := config.LoadWithFile(configPath)
	if err != nil {
		return nil, nil, err
	}
	if serverURL != "" {
		cfg.API.BaseURL = serverURL
	}

	logger, flush, err := logging.New(&cfg.Logging)
	if err != nil {
		return nil, nil, err
	}

	store, err := storage.Open(cfg.Storage.Path, logger)
	if err != nil {
		flush()
		return nil, nil, err
	}

	if installID, err := store.InstallID(); err == nil {
		logger = logger.With(zap.String("install_id", installID))
	}

	client := api.NewClient(cfg.API.BaseURL,
		api.WithTimeout(cfg.API.Timeout.Duration()),
		api.WithLogger(logger),
	)
	if sess, err := store.LoadSession(); err == nil {
		client.SetToken(sess.Token)
	}

	rt := &runtime{
		cfg:    cfg,
		logger: logger,
		store:  store,
		client: client,
		lists:  cache.NewSurveyList(client, store, cfg.Cache.SurveyListTTL.Duration(), logger),
		flush:  flush,
	}
	closeAll := func() {
		store.Close()
		flush()
	}
	return rt, closeAll, nil
}

// runTUI starts the interactive interface.
func runTUI(cmd *cobra.Command, args []string) error {
	rt, closeAll, err := setup()
	if err != nil {
		return err
	}
	defer closeAll()

	rt.logger.Info("starting interface", zap.String("version", version))

	app := ui.NewApp(ui.Deps{
		Client: rt.client,
		Store:  rt.store,
		Lists:  rt.lists,
		Logger: rt.logger,
		Now:    time.Now,
	})

	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("interface error: %w", err)
	}
	return nil
}
