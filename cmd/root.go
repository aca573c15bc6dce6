package main

import (
	"context"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"placebrowser/internal/api"
	"placebrowser/internal/browser"
	"placebrowser/internal/config"
	"placebrowser/internal/fetch"
	"placebrowser/internal/logging"
	"placebrowser/internal/tui"
	"placebrowser/internal/view"
)

type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "placebrowser",
		Short: "Browse users, posts, albums and comments from a JSON placeholder API",
		Long: `placebrowser fetches users from a JSON placeholder REST API and lets you
open each user's posts or albums and expand the comments under a post.

Run it in a terminal for the interactive browser. When stdout is not a
terminal the user list is written as an HTML page instead.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.loadConfig,
		RunE:              a.runBrowse,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "", "config file (default is $HOME/.config/placebrowser/config.yaml)")
	pf.String("base-url", "", "API base URL")
	pf.Duration("http-timeout", 0, "per-request HTTP timeout (0 disables)")
	pf.String("log-file", "", "log file path")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	root.Flags().String("export-path", "", "file written by the e key")

	a.bind("api.base_url", pf.Lookup("base-url"))
	a.bind("api.http_timeout", pf.Lookup("http-timeout"))
	a.bind("log.file", pf.Lookup("log-file"))
	a.bind("log.level", pf.Lookup("log-level"))
	a.bind("tui.export_path", root.Flags().Lookup("export-path"))

	root.AddCommand(newExportCmd(a))
	return root
}

func (a *app) bind(key string, flag *pflag.Flag) {
	_ = a.v.BindPFlag(key, flag)
}

func (a *app) loadConfig(*cobra.Command, []string) error {
	if err := config.Setup(a.v, a.cfgFile); err != nil {
		return err
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

func (a *app) newFetcher(logger *logging.Logger) *fetch.Fetcher {
	httpClient := &http.Client{Timeout: a.cfg.API.HTTPTimeout}
	return fetch.New(api.New(httpClient, a.cfg.API.BaseURL), logger)
}

func (a *app) runBrowse(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if !isTerminal(os.Stdout) {
		logger := logging.New(os.Stderr, a.cfg.Log.Level)
		return dumpUsers(ctx, cmd.OutOrStdout(), browser.New(a.newFetcher(logger), logger))
	}

	logger, err := logging.NewFile(a.cfg.Log.File, a.cfg.Log.Level)
	if err != nil {
		return err
	}
	defer logger.Close()
	logger.Infof("Starting browser against %s", a.cfg.API.BaseURL)

	ctrl := browser.New(a.newFetcher(logger), logger)
	return tui.Run(ctx, ctrl, logger, a.cfg.TUI.ExportPath)
}

// dumpUsers bootstraps ctrl and writes its document as HTML. A failed
// bootstrap has already been logged and leaves an empty user list.
func dumpUsers(ctx context.Context, w io.Writer, ctrl *browser.Controller) error {
	ctrl.Bootstrap(ctx)
	var err error
	ctrl.Read(func(d *view.Document) {
		err = view.WriteHTML(w, "Users", d)
	})
	return err
}

func isTerminal(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice != 0
}
