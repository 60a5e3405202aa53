// Package filehandling cleans up lists of input files before they are processed.
package filehandling

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

const chunkSize = 8 * 1024

// Equal reports whether two files are the same. Regular files whose type,
// size and modification time match are equal without reading them; files of
// equal size but different time are compared byte by byte.
func Equal(a, b string) (bool, error) {
	sa, err := os.Stat(a)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", a, err)
	}
	sb, err := os.Stat(b)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", b, err)
	}

	if !sa.Mode().IsRegular() || !sb.Mode().IsRegular() {
		return false, nil
	}
	if sa.Mode().Type() == sb.Mode().Type() && sa.Size() == sb.Size() && sa.ModTime().Equal(sb.ModTime()) {
		return true, nil
	}
	if sa.Size() != sb.Size() {
		return false, nil
	}
	return sameContent(a, b)
}

func sameContent(a, b string) (bool, error) {
	fa, err := os.Open(a)
	if err != nil {
		return false, err
	}
	defer fa.Close()
	fb, err := os.Open(b)
	if err != nil {
		return false, err
	}
	defer fb.Close()

	ra, rb := bufio.NewReaderSize(fa, chunkSize), bufio.NewReaderSize(fb, chunkSize)
	bufA, bufB := make([]byte, chunkSize), make([]byte, chunkSize)
	for {
		na, errA := io.ReadFull(ra, bufA)
		nb, errB := io.ReadFull(rb, bufB)
		if !bytes.Equal(bufA[:na], bufB[:nb]) {
			return false, nil
		}
		doneA := errors.Is(errA, io.EOF) || errors.Is(errA, io.ErrUnexpectedEOF)
		doneB := errors.Is(errB, io.EOF) || errors.Is(errB, io.ErrUnexpectedEOF)
		switch {
		case doneA && doneB:
			return true, nil
		case errA != nil && !doneA:
			return false, errA
		case errB != nil && !doneB:
			return false, errB
		case doneA != doneB:
			return false, nil
		}
	}
}

// Deduplicate drops every entry that equals a later entry of the list, so the
// last occurrence of a duplicate is the one kept. Lists with fewer than two
// entries are returned unchanged.
func Deduplicate(paths []string) ([]string, error) {
	if len(paths) <= 1 {
		return paths, nil
	}

	drop := make(map[int]bool)
	for i := range paths {
		for _, other := range paths[i+1:] {
			same, err := Equal(paths[i], other)
			if err != nil {
				return nil, err
			}
			if same {
				drop[i] = true
				break
			}
		}
	}
	if len(drop) == 0 {
		return paths, nil
	}

	kept := make([]string, 0, len(paths)-len(drop))
	for i, p := range paths {
		if drop[i] {
			slog.Debug("ignored duplicate file", "path", p)
			continue
		}
		kept = append(kept, p)
	}
	slog.Info("found and ignored duplicates in file list", "count", len(drop))
	return kept, nil
}

// WithoutDuplicates wraps a consumer of file lists so it only ever sees
// deduplicated input.
func WithoutDuplicates[T any](fn func([]string) (T, error)) func([]string) (T, error) {
	return func(paths []string) (T, error) {
		kept, err := Deduplicate(paths)
		if err != nil {
			var zero T
			return zero, err
		}
		return fn(kept)
	}
}
