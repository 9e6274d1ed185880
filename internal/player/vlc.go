package player

import (
	"context"

	"pahe/internal/media"
)

// VLC implements the Player interface for VLC media player.
type VLC struct{}

func (v *VLC) Name() string { return "vlc" }

func (v *VLC) Available() bool { return available("vlc") }

func (v *VLC) Play(ctx context.Context, stream media.Stream, title string) error {
	return run(ctx, "vlc", vlcArgs(stream, title))
}

// vlcArgs builds the VLC argument list. VLC cannot send arbitrary headers,
// only the referrer.
func vlcArgs(stream media.Stream, title string) []string {
	args := []string{
		stream.URL,
		"--meta-title", title,
		"--play-and-exit",
	}
	if stream.Referer != "" {
		args = append(args, "--http-referrer="+stream.Referer)
	}
	return args
}
