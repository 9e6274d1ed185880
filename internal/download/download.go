// Package download provides ffmpeg-based media downloading.
// Uses exec.Command with explicit argument slices and validates
// output paths against directory traversal attacks.
package download

import (
	"context"
	"fmt"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"pahe/internal/httputil"
	"pahe/internal/media"
)

// Download fetches a stream to outputDir using ffmpeg and returns the
// written file's path.
func Download(ctx context.Context, stream media.Stream, title, outputDir string) (string, error) {
	ffmpegPath, err := exec.LookPath("ffmpeg")
	if err != nil {
		return "", fmt.Errorf("ffmpeg not found in PATH: %w", err)
	}

	absDir, err := filepath.Abs(outputDir)
	if err != nil {
		return "", fmt.Errorf("resolving output directory: %w", err)
	}
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	filename := httputil.SanitizeFilename(title) + ".mp4"
	outputPath, err := httputil.SafeDownloadPath(absDir, filename)
	if err != nil {
		return "", fmt.Errorf("invalid output path: %w", err)
	}

	args := ffmpegArgs(stream, title, outputPath)
	logrus.WithFields(logrus.Fields{"quality": stream.Quality, "output": outputPath}).Debug("starting download")

	cmd := exec.CommandContext(ctx, ffmpegPath, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	fmt.Fprintf(os.Stderr, "Downloading to: %s\n", outputPath)

	if err := cmd.Run(); err != nil {
		os.Remove(outputPath)
		return "", fmt.Errorf("ffmpeg download failed: %w", err)
	}

	return outputPath, nil
}

// ffmpegArgs builds the ffmpeg argument list. Input options such as
// headers must precede -i.
func ffmpegArgs(stream media.Stream, title, outputPath string) []string {
	args := []string{"-y"}

	if len(stream.Headers) > 0 {
		var b strings.Builder
		for _, k := range slices.Sorted(maps.Keys(stream.Headers)) {
			fmt.Fprintf(&b, "%s: %s\r\n", k, stream.Headers[k])
		}
		args = append(args, "-headers", b.String())
	}

	return append(args,
		"-i", stream.URL,
		"-c", "copy",
		"-metadata", "title="+title,
		outputPath,
	)
}
