// Package fsops performs the CLI's output-directory side effects: creating
// intermediate directories before a write and writing a file scoped to one
// handle, open-write-close, per call.
package fsops

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/nmeunpack/nme-unpacker/internal/errs"
)

// EnsureParentDir creates p's parent directory and any missing ancestors;
// callers must not assume a destination's parent directory pre-exists.
func EnsureParentDir(p string) error {
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return errs.IO(err, "create output directory")
	}
	return nil
}

// WithinRoot reports whether the cleaned form of p lies within root,
// guarding against a composed path that (through some future bug in
// pathutil) escapes the output directory. It is a defense-in-depth check,
// not pathutil's primary sandboxing.
func WithinRoot(root, p string) bool {
	cleanRoot := filepath.Clean(root)
	cleanP := filepath.Clean(p)
	rel, err := filepath.Rel(cleanRoot, cleanP)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// WriteFile creates p's parent directories and writes data to it,
// overwriting any existing file. It is scoped to one call — the output
// handle is closed before returning.
func WriteFile(p string, data []byte) error {
	if err := EnsureParentDir(p); err != nil {
		return err
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return errs.IO(err, "open output file")
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(data); err != nil {
		return errs.IO(err, "write output file")
	}
	return nil
}
