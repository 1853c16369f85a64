package app

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kgrae/bookdesk/internal/prefs"
	"github.com/kgrae/bookdesk/internal/ui"
)

func newBrowseCmd() *cobra.Command {
	var prefsPath string
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Launch the interactive catalog browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowseWithPrefs(cmd.Context(), prefsPath)
		},
	}
	cmd.Flags().StringVar(&prefsPath, "prefs", "", "Preferences file path (default: ~/.config/bookdesk/prefs.toml)")
	return cmd
}

func runBrowse(ctx context.Context) error {
	return runBrowseWithPrefs(ctx, "")
}

func runBrowseWithPrefs(ctx context.Context, prefsPath string) error {
	userPrefs := prefs.Load(prefsPath)

	pageSize := cfg.PageSize
	if userPrefs.PageSize > 0 {
		pageSize = userPrefs.PageSize
	}

	return ui.Run(ui.Options{
		Context:   ctx,
		Session:   sess,
		ThemeName: userPrefs.Theme,
		PrefsPath: prefsPath,
		PageSize:  pageSize,
	})
}
