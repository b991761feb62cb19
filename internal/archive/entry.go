// Package archive implements the DIR archive's directory-entry wire format
// and its breadth-first traversal.
package archive

import (
	"github.com/nmeunpack/nme-unpacker/internal/errs"
	"github.com/nmeunpack/nme-unpacker/internal/reader"
)

// EntryType classifies a directory entry.
type EntryType int8

const (
	TypeFile      EntryType = 0
	TypeDirectory EntryType = 1
	TypeSentinel  EntryType = -1
)

// wireEntrySize is the on-wire byte size of one directory entry: name(32) +
// type(1) + pad(3) + size(4) + offset(4).
const wireEntrySize = 44

// RawEntry is the wire-format directory entry, read field-by-field with no
// struct overlay, kept separate from the enriched in-memory Entry below.
type RawEntry struct {
	Name   string
	Type   EntryType
	Size   uint32
	Offset uint32
}

// decodeRawEntry reads exactly one on-wire entry and reports whether it is
// the end-of-listing sentinel. It performs no semantic validation of
// offset/size — that is the traverser's job.
func decodeRawEntry(r *reader.Reader) (RawEntry, error) {
	nameBuf, err := r.ReadBytes(32)
	if err != nil {
		return RawEntry{}, errs.IO(err, "read entry name")
	}
	nameBuf[31] = 0 // clamp: the field is NUL-padded but not NUL-terminated at full length
	name := cStr(nameBuf)

	typeByte, err := r.ReadI8()
	if err != nil {
		return RawEntry{}, errs.IO(err, "read entry type")
	}
	if err := r.Skip(3); err != nil { // pad
		return RawEntry{}, errs.IO(err, "skip entry pad")
	}
	size, err := r.ReadU32LE()
	if err != nil {
		return RawEntry{}, errs.IO(err, "read entry size")
	}
	offset, err := r.ReadU32LE()
	if err != nil {
		return RawEntry{}, errs.IO(err, "read entry offset")
	}

	return RawEntry{
		Name:   name,
		Type:   EntryType(typeByte),
		Size:   size,
		Offset: offset,
	}, nil
}

// cStr returns the string up to (excluding) the first NUL byte in b.
func cStr(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// Entry is the in-memory, enriched extension of RawEntry: it adds a
// non-owning back-reference to its parent via an arena index rather than
// embedding the reference in a ring-buffer-of-structs.
type Entry struct {
	RawEntry
	ParentIdx int // index into the owning Arena.entries; -1 for root children
}

// EntryName implements pathutil.Named.
func (e Entry) EntryName() string { return e.Name }

// Arena owns every Entry produced during a traversal. Entries live from
// creation until the arena itself is discarded at the end of traversal;
// their lifetime never needs to be tracked individually because the arena
// index is stable for the arena's lifetime.
type Arena struct {
	entries []Entry
}

// NewArena returns an empty entry arena.
func NewArena() *Arena {
	return &Arena{}
}

// add appends e to the arena and returns its index.
func (a *Arena) add(e Entry) int {
	a.entries = append(a.entries, e)
	return len(a.entries) - 1
}

// Get returns the entry at idx.
func (a *Arena) Get(idx int) Entry {
	return a.entries[idx]
}

// Ancestors returns idx's ancestor chain, root-first, not including idx
// itself. Used by the path composer to build nested output paths.
func (a *Arena) Ancestors(idx int) []Entry {
	var chain []Entry
	for idx >= 0 {
		e := a.entries[idx]
		chain = append(chain, e)
		idx = e.ParentIdx
	}
	// chain is currently leaf-first (excluding the starting entry is wrong:
	// we included it, so drop it and reverse the rest).
	if len(chain) == 0 {
		return nil
	}
	chain = chain[1:]
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}
