package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"kwaigrab/internal/media"
	"kwaigrab/internal/player"
)

var (
	flagJSON bool
	flagPlay bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <kwai-url>",
	Short: "Print the direct video URL behind a Kwai link",
	Args:  cobra.ExactArgs(1),
	RunE:  extractRun,
}

func init() {
	extractCmd.Flags().BoolVarP(&flagJSON, "json", "j", false, "Output result as JSON")
	extractCmd.Flags().BoolVar(&flagPlay, "play", false, "Open the video in the configured player")
}

func extractRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	p := newProvider(newClient())

	var res *media.Result
	err := withSpinner(ctx, "Fetching Kwai page", func(ctx context.Context) error {
		var err error
		res, err = p.Resolve(ctx, args[0])
		return err
	})
	if err != nil {
		return err
	}
	debugf("matched strategy %s", res.Strategy)

	if flagJSON {
		out := map[string]interface{}{
			"success":  true,
			"videoUrl": res.VideoURL,
			"author":   res.Author,
			"title":    res.Title,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return err
		}
	} else {
		fmt.Println(renderResult(res))
	}

	if flagPlay {
		pl := player.New(cfg.Player)
		if !pl.Available() {
			return fmt.Errorf("player %s not found in PATH", pl.Name())
		}
		return pl.Play(ctx, res)
	}
	return nil
}

var (
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff3366")).Width(8)
	urlStyle   = lipgloss.NewStyle().Underline(true)
)

func renderResult(res *media.Result) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render("Title")+res.Title,
		labelStyle.Render("Author")+res.Author,
		labelStyle.Render("Video")+urlStyle.Render(res.VideoURL),
	)
}
