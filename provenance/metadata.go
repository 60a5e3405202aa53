// Package provenance records where output files come from: the calling
// source file and line and the git commit of the working tree. Save writes
// tables and datasets with that information attached.
package provenance

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
)

// ErrNoCaller is returned when the calling frame cannot be resolved.
var ErrNoCaller = errors.New("provenance: caller frame unavailable")

// gitTimeout bounds the git subprocess.
const gitTimeout = 5 * time.Second

// clock is a package-level time source so tests can freeze time via SetClock.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source for history entries. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// gitCommit resolves the short hash of HEAD; replaced in tests.
var gitCommit = func(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, gitTimeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, "git", "rev-parse", "--short", "HEAD").Output()
	if err != nil {
		return "", fmt.Errorf("git rev-parse: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Metadata identifies the code that produced an output.
type Metadata struct {
	RelativeCodePath string `json:"relative_code_path"`
	LineNumber       int    `json:"line_number"`
	GitCommit        string `json:"git_commit"`
}

// String formats as "<path>#<line> @git-commit:<hash>".
func (m Metadata) String() string {
	return fmt.Sprintf("%s#%d @git-commit:%s", m.RelativeCodePath, m.LineNumber, m.GitCommit)
}

// Collect gathers metadata for the caller skip frames above Collect's caller;
// skip 0 describes the function calling Collect. The path is relative to the
// working directory when possible.
func Collect(ctx context.Context, skip int) (Metadata, error) {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Metadata{}, ErrNoCaller
	}

	path := file
	if wd, err := os.Getwd(); err == nil {
		if rel, err := filepath.Rel(wd, file); err == nil {
			path = rel
		}
	}

	commit, err := gitCommit(ctx)
	if err != nil {
		return Metadata{}, err
	}
	return Metadata{RelativeCodePath: path, LineNumber: line, GitCommit: commit}, nil
}
