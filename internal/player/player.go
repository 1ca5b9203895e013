// Package player launches an external media player on an extracted video URL.
// Players are started with explicit argument slices, never through a shell.
package player

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"kwaigrab/internal/media"
)

// Player is the interface for media player implementations.
type Player interface {
	// Play blocks until the player exits.
	Play(ctx context.Context, res *media.Result) error

	// Name returns the player name.
	Name() string

	// Available checks if the player binary exists in PATH.
	Available() bool
}

// Command runs a player binary with mpv- or vlc-style flags.
type Command struct {
	name string
}

// New creates a player by name. Unknown names fall back to mpv.
func New(name string) Player {
	switch strings.ToLower(name) {
	case "vlc", "iina", "celluloid":
		return &Command{name: strings.ToLower(name)}
	default:
		return &Command{name: "mpv"}
	}
}

func (c *Command) Name() string { return c.name }

func (c *Command) Available() bool {
	_, err := exec.LookPath(c.name)
	return err == nil
}

// Play launches the player on res.VideoURL.
func (c *Command) Play(ctx context.Context, res *media.Result) error {
	if res == nil || res.VideoURL == "" {
		return fmt.Errorf("no video URL to play")
	}

	path, err := exec.LookPath(c.name)
	if err != nil {
		return fmt.Errorf("%s not found in PATH: %w", c.name, err)
	}

	cmd := exec.CommandContext(ctx, path, c.args(res)...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		// Players exit non-zero when the user closes the window.
		if _, ok := err.(*exec.ExitError); ok {
			return nil
		}
		return fmt.Errorf("running %s: %w", c.name, err)
	}
	return nil
}

func (c *Command) args(res *media.Result) []string {
	title := res.Title
	if res.Author != "" && res.Author != media.UnknownAuthor {
		title = res.Author + " - " + title
	}

	if c.name == "vlc" {
		return []string{res.VideoURL, "--meta-title", title, "--play-and-exit"}
	}
	// mpv, iina and celluloid share mpv's flag syntax
	return []string{res.VideoURL, "--force-media-title=" + title, "--loop-file=no"}
}
