package player

import (
	"context"
	"slices"

	"pahe/internal/media"
)

// Generic implements the Player interface for players like iina and celluloid
// that accept mpv-compatible arguments.
type Generic struct {
	name string
}

func (g *Generic) Name() string { return g.name }

func (g *Generic) Available() bool { return available(g.name) }

func (g *Generic) Play(ctx context.Context, stream media.Stream, title string) error {
	args := slices.DeleteFunc(mpvArgs(stream, title), func(a string) bool {
		return a == "--really-quiet"
	})
	return run(ctx, g.name, args)
}
