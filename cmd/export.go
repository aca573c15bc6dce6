package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"placebrowser/internal/export"
	"placebrowser/internal/logging"
)

func newExportCmd(a *app) *cobra.Command {
	var usersQuery string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write static HTML pages of users' posts and albums",
		Long: `Export fetches the user list, then for every chosen user writes a page
with their posts and a page with their albums into the export directory,
next to an index.html listing all users.

Users are chosen with --users, or interactively when stdin is a terminal.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runExport(cmd, usersQuery)
		},
	}

	f := cmd.Flags()
	f.StringVar(&usersQuery, "users", "", "comma-separated user ids, usernames or names to export, or \"all\"")
	f.String("dir", "", "export directory")
	f.Int("workers", 0, "number of users exported concurrently")
	f.Bool("comments", false, "expand every post's comments in the exported pages")

	a.bind("export.dir", f.Lookup("dir"))
	a.bind("export.workers", f.Lookup("workers"))
	a.bind("export.comments", f.Lookup("comments"))
	return cmd
}

func (a *app) runExport(cmd *cobra.Command, usersQuery string) error {
	ctx := cmd.Context()
	logger := logging.New(os.Stderr, a.cfg.Log.Level)
	fetcher := a.newFetcher(logger)

	logger.Infof("Fetching users from %s", a.cfg.API.BaseURL)
	users, ok := fetcher.Users(ctx)
	if !ok {
		return fmt.Errorf("fetch users from %s failed", a.cfg.API.BaseURL)
	}

	selected, err := chooseUsers(usersQuery, users)
	if err != nil {
		return fmt.Errorf("select users: %w", err)
	}
	if len(selected) == 0 {
		logger.Warnf("No users selected; exiting")
		return nil
	}
	logger.Infof("Selected %d/%d users for export", len(selected), len(users))

	exporter := export.New(fetcher, logger, export.Options{
		Dir:      a.cfg.Export.Dir,
		Workers:  a.cfg.Export.Workers,
		Comments: a.cfg.Export.Comments,
	})
	pages, err := exporter.Run(ctx, users, selected)
	for _, p := range pages {
		logger.Infof("%s: %d post(s) -> %s, %d album(s) -> %s", p.User.Username, p.Posts, p.PostsPath, p.Albums, p.AlbumsPath)
	}
	if err != nil {
		return fmt.Errorf("one or more users failed: %w", err)
	}

	logger.Infof("Exported %d user(s) to %s", len(pages), a.cfg.Export.Dir)
	return nil
}
