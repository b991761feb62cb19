// Package reader implements the positioned byte reader the archive and WAD
// decoders read through: a stateful cursor over an io.ReaderAt with
// little-endian field accessors.
package reader

import (
	"encoding/binary"
	"io"

	"github.com/nmeunpack/nme-unpacker/internal/errs"
)

// Reader is a stateful, single-threaded positioned reader over a seekable
// input. All operations fail with a KindIO *errs.Error on any short read,
// seek past EOF, or premature EOF encountered mid-record.
type Reader struct {
	r   io.ReaderAt
	pos int64
	end int64
}

// New wraps ra, whose total size is size, as a positioned Reader starting
// at offset 0.
func New(ra io.ReaderAt, size int64) *Reader {
	return &Reader{r: ra, end: size}
}

// Pos returns the current absolute read position.
func (d *Reader) Pos() int64 { return d.pos }

// AtEOF reports whether the cursor sits at or past the end of the input.
func (d *Reader) AtEOF() bool { return d.pos >= d.end }

// Size returns the total addressable length of the input.
func (d *Reader) Size() int64 { return d.end }

// SeekAbs moves the cursor to an absolute offset. It does not itself read,
// so an offset exactly at Size() is legal (AtEOF becomes true).
func (d *Reader) SeekAbs(off int64) error {
	if off < 0 || off > d.end {
		return errs.IOf("seek to %d out of range [0,%d]", off, d.end)
	}
	d.pos = off
	return nil
}

// SeekRel moves the cursor by a relative delta.
func (d *Reader) SeekRel(delta int64) error {
	return d.SeekAbs(d.pos + delta)
}

// ReadInto fills buf with exactly len(buf) bytes starting at the current
// position, advancing the cursor. A short read anywhere — including
// running past the end of the input — is a KindIO error.
func (d *Reader) ReadInto(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	if d.pos+int64(len(buf)) > d.end {
		return errs.IOf("short read: need %d bytes at offset %d, have %d", len(buf), d.pos, d.end-d.pos)
	}
	n, err := d.r.ReadAt(buf, d.pos)
	if n != len(buf) {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return errs.IO(err, "positioned read")
	}
	d.pos += int64(n)
	return nil
}

// ReadBytes reads and returns a freshly allocated n-byte slice.
func (d *Reader) ReadBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if err := d.ReadInto(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// Skip advances the cursor by n bytes without reading, still subject to the
// same bounds check as ReadInto.
func (d *Reader) Skip(n int64) error {
	return d.SeekRel(n)
}

// ReadU8 reads one unsigned byte.
func (d *Reader) ReadU8() (uint8, error) {
	var b [1]byte
	if err := d.ReadInto(b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadI8 reads one signed byte, used for the directory entry type field.
func (d *Reader) ReadI8() (int8, error) {
	v, err := d.ReadU8()
	return int8(v), err
}

// ReadU16LE reads a little-endian uint16.
func (d *Reader) ReadU16LE() (uint16, error) {
	var b [2]byte
	if err := d.ReadInto(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

// ReadU32LE reads a little-endian uint32.
func (d *Reader) ReadU32LE() (uint32, error) {
	var b [4]byte
	if err := d.ReadInto(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

// ReadU64LE reads a little-endian uint64.
func (d *Reader) ReadU64LE() (uint64, error) {
	var b [8]byte
	if err := d.ReadInto(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}
