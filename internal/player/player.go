// Package player launches external media players.
// All invocations use exec.Command with explicit argument slices.
package player

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"os/exec"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"pahe/internal/media"
)

// Player is the interface for media player implementations.
type Player interface {
	// Play starts playback of a stream and blocks until the player exits.
	Play(ctx context.Context, stream media.Stream, title string) error

	// Name returns the player name.
	Name() string

	// Available checks if the player binary exists in PATH.
	Available() bool
}

// New creates a player by name.
func New(name string) Player {
	switch name {
	case "mpv":
		return &MPV{}
	case "vlc":
		return &VLC{}
	case "iina", "celluloid":
		return &Generic{name: name}
	default:
		return &MPV{}
	}
}

func available(bin string) bool {
	_, err := exec.LookPath(bin)
	return err == nil
}

// run executes bin in the foreground. A non-zero exit is how most players
// report a user quit, so it is not an error.
func run(ctx context.Context, bin string, args []string) error {
	logrus.WithFields(logrus.Fields{"player": bin, "args": args}).Debug("launching player")

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil
		}
		return fmt.Errorf("running %s: %w", bin, err)
	}
	return nil
}

// headerFields renders headers in mpv's --http-header-fields format,
// sorted by name.
func headerFields(headers map[string]string) string {
	fields := make([]string, 0, len(headers))
	for _, k := range slices.Sorted(maps.Keys(headers)) {
		fields = append(fields, fmt.Sprintf("%s: %s", k, headers[k]))
	}
	return strings.Join(fields, ",")
}
