package player

import (
	"context"

	"pahe/internal/media"
)

// MPV implements the Player interface for mpv.
type MPV struct{}

func (m *MPV) Name() string { return "mpv" }

func (m *MPV) Available() bool { return available("mpv") }

// Play launches mpv with the stream's referer and headers.
func (m *MPV) Play(ctx context.Context, stream media.Stream, title string) error {
	return run(ctx, "mpv", mpvArgs(stream, title))
}

// mpvArgs builds the mpv-compatible argument list shared by mpv, iina and
// celluloid.
func mpvArgs(stream media.Stream, title string) []string {
	args := []string{
		stream.URL,
		"--force-media-title=" + title,
		"--really-quiet",
	}
	if stream.Referer != "" {
		args = append(args, "--referrer="+stream.Referer)
	}
	if len(stream.Headers) > 0 {
		args = append(args, "--http-header-fields="+headerFields(stream.Headers))
	}
	return args
}
