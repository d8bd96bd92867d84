package cmd

import (
	"fmt"
	"net/http"
	"os"

	"orarctl/pkg/config"
	"orarctl/pkg/logging"
	"orarctl/pkg/scraper"
	"orarctl/pkg/tui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "orarctl",
	Short: "A CLI, TUI and JSON API for the UBB Cluj timetables",
	Long: `orarctl scrapes the published timetables of the Faculty of Mathematics
and Computer Science at UBB Cluj, serves them as a JSON API and exports
group schedules to .ics files.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.orarctl.yaml)")
}

// setup loads the configuration and builds the logger every command uses.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func newClient(cfg *config.Config, logger *zap.Logger, opts ...scraper.Option) *scraper.Client {
	opts = append([]scraper.Option{
		scraper.WithHTTPClient(&http.Client{Timeout: cfg.Source.HTTPTimeout}),
		scraper.WithUserAgent(cfg.Source.UserAgent),
		scraper.WithLogger(logger),
	}, opts...)

	return scraper.NewClient(cfg.Source.BaseURL, scraper.NewPageCache(cfg.Cache.Size), opts...)
}

func newSession() (*tui.Session, error) {
	cfg, logger, err := setup()
	if err != nil {
		return nil, err
	}

	path := cfgFile
	if path == "" {
		if path, err = config.DefaultPath(); err != nil {
			return nil, err
		}
	}

	return &tui.Session{Client: newClient(cfg, logger), Config: cfg, ConfigPath: path}, nil
}
