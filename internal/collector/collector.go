// Package collector enumerates installed applications by shelling out
// to package-manager listing commands and parsing their line-oriented
// output into records.
package collector

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/menthoven/mxapplist/internal/record"
)

// ErrNotInstalled reports a package-manager binary missing from PATH.
var ErrNotInstalled = errors.New("not installed")

// Source lists the applications installed through one package manager.
type Source interface {
	// Name identifies the source in logs and reports.
	Name() string
	// Installed returns the applications the package manager reports.
	Installed(ctx context.Context) ([]record.Record, error)
}

// Result is the outcome of collecting one source.
type Result struct {
	Source  string
	Records []record.Record
	Err     error
}

// Skipped reports whether the source failed and was skipped.
func (r Result) Skipped() bool {
	return r.Err != nil
}

// Collect runs each source in order. A failing source yields a Result
// carrying its error; the remaining sources still run.
func Collect(ctx context.Context, sources []Source) []Result {
	results := make([]Result, 0, len(sources))
	for _, src := range sources {
		records, err := src.Installed(ctx)
		results = append(results, Result{Source: src.Name(), Records: records, Err: err})
	}
	return results
}

// run locates a binary on PATH and executes it with the given
// arguments, returning captured stdout. A missing binary yields an
// error wrapping ErrNotInstalled; a nonzero exit reports the status
// and the command's stderr.
func run(ctx context.Context, bin string, args ...string) (string, error) {
	path, err := exec.LookPath(bin)
	if err != nil {
		return "", fmt.Errorf("%s: %w", bin, ErrNotInstalled)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	slog.Debug("running package listing", "command", bin, "args", strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if msg := strings.TrimSpace(stderr.String()); msg != "" {
				return "", fmt.Errorf("%s exited with status %d: %s", bin, exitErr.ExitCode(), msg)
			}
			return "", fmt.Errorf("%s exited with status %d", bin, exitErr.ExitCode())
		}
		return "", fmt.Errorf("run %s: %w", bin, err)
	}

	return stdout.String(), nil
}

// splitLines breaks command output into non-empty lines with trailing
// carriage returns removed.
func splitLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
