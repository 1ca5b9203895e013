package player

import (
	"context"
	"reflect"
	"testing"

	"kwaigrab/internal/media"
)

func TestNew(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"mpv", "mpv"},
		{"VLC", "vlc"},
		{"iina", "iina"},
		{"celluloid", "celluloid"},
		{"notepad", "mpv"},
		{"", "mpv"},
	}

	for _, tt := range tests {
		if got := New(tt.in).Name(); got != tt.want {
			t.Errorf("New(%q).Name() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestArgs(t *testing.T) {
	res := &media.Result{VideoURL: "https://cdn.kwai.net/a.mp4", Author: "Ana", Title: "Sunset"}

	tests := []struct {
		name   string
		player string
		res    *media.Result
		want   []string
	}{
		{
			name:   "mpv",
			player: "mpv",
			res:    res,
			want:   []string{"https://cdn.kwai.net/a.mp4", "--force-media-title=Ana - Sunset", "--loop-file=no"},
		},
		{
			name:   "vlc",
			player: "vlc",
			res:    res,
			want:   []string{"https://cdn.kwai.net/a.mp4", "--meta-title", "Ana - Sunset", "--play-and-exit"},
		},
		{
			name:   "unknown author",
			player: "iina",
			res:    &media.Result{VideoURL: "u", Author: media.UnknownAuthor, Title: "T"},
			want:   []string{"u", "--force-media-title=T", "--loop-file=no"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.player).(*Command)
			if got := c.args(tt.res); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("args() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlayWithoutURL(t *testing.T) {
	if err := New("mpv").Play(context.Background(), &media.Result{}); err == nil {
		t.Fatal("Play() should fail without a video URL")
	}
}
