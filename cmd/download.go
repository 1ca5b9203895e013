package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"kwaigrab/internal/download"
	"kwaigrab/internal/httputil"
	"kwaigrab/internal/media"
)

var flagOutput string

var downloadCmd = &cobra.Command{
	Use:   "download <kwai-url | video-url>",
	Short: "Save a video to disk",
	Long: `Save a video to disk. Kwai page links are resolved first;
any other URL is fetched as-is.`,
	Args: cobra.ExactArgs(1),
	RunE: downloadRun,
}

func init() {
	downloadCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Directory to save into (default: download_dir from config)")
}

func downloadRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	client := newClient()

	target := args[0]
	if httputil.HostAllowed(target, cfg.AllowedHosts) {
		var res *media.Result
		err := withSpinner(ctx, "Resolving Kwai link", func(ctx context.Context) error {
			var err error
			res, err = newProvider(client).Resolve(ctx, target)
			return err
		})
		if err != nil {
			return err
		}
		debugf("resolved %s via %s", target, res.Strategy)
		target = res.VideoURL
	}

	dir := flagOutput
	if dir == "" {
		var err error
		dir, err = cfg.ExpandDownloadDir()
		if err != nil {
			return err
		}
	}

	var path string
	err := withSpinner(ctx, "Downloading", func(ctx context.Context) error {
		var err error
		path, err = download.Save(ctx, client, target, dir)
		return err
	})
	if err != nil {
		return fmt.Errorf("downloading: %w", err)
	}

	fmt.Println(path)
	return nil
}
