// Package pathutil builds output paths for extracted entries from their
// ancestor chain, generalizing a path-segment validation approach
// originally written for untrusted network-supplied paths to archive-entry
// names read from untrusted wire data.
package pathutil

import (
	"path/filepath"
	"strings"

	"github.com/nmeunpack/nme-unpacker/internal/errs"
)

// Named is the minimal shape pathutil needs from an archive/traversal
// entry or image record: just its on-wire name.
type Named interface {
	EntryName() string
}

// Compose builds `base/ancestor0/ancestor1/.../name` for an entry whose
// ancestors are given root-first: D / e_0.name / ... / e_k.name / e.name.
// It allocates a fresh path string and does not mutate its inputs.
func Compose(base string, ancestors []Named, name string) (string, error) {
	segs := make([]string, 0, len(ancestors)+1)
	for _, a := range ancestors {
		seg, err := sanitizeSegment(a.EntryName())
		if err != nil {
			return "", err
		}
		segs = append(segs, seg)
	}
	seg, err := sanitizeSegment(name)
	if err != nil {
		return "", err
	}
	segs = append(segs, seg)

	return filepath.Join(append([]string{base}, segs...)...), nil
}

// RewriteImageOutputName applies the image-output naming rule: an RLE
// image's name has its .rle suffix rewritten to .png; a BMP image's name
// keeps a present .bmp suffix verbatim, or gets .bmp appended if it has no
// suffix at all. A .bmp suffix is never rewritten, only appended when
// absent.
func RewriteImageOutputName(name string, isRLE bool) string {
	if isRLE {
		if ext := filepath.Ext(name); strings.EqualFold(ext, ".rle") {
			return name[:len(name)-len(ext)] + ".png"
		}
		return name + ".png"
	}
	if filepath.Ext(name) == "" {
		return name + ".bmp"
	}
	return name
}

// sanitizeSegment rejects path segments that would let a maliciously
// crafted archive escape the output directory: empty names, '.'/'..', and
// any path separator embedded in a name field.
func sanitizeSegment(name string) (string, error) {
	if name == "" {
		return "", errs.Formatf("empty entry name in archive")
	}
	if name == "." || name == ".." {
		return "", errs.Formatf("illegal entry name %q", name)
	}
	if strings.ContainsAny(name, "/\\") {
		return "", errs.Formatf("entry name %q contains a path separator", name)
	}
	return name, nil
}
