// Package wad implements the nested WAD archive's wire format: a palette
// table followed by a sequence of image records.
package wad

import (
	"strings"

	"github.com/nmeunpack/nme-unpacker/internal/errs"
	"github.com/nmeunpack/nme-unpacker/internal/memtrack"
	"github.com/nmeunpack/nme-unpacker/internal/reader"
)

const (
	headerSkipBytes = 400

	// trailingHeaderPad is a fixed skip immediately after the image
	// header's named fields (name 32 + pixel_data_size 8 + unused 8 +
	// height 4 + width 4 + color_depth 2 = 58 bytes), before pixel data
	// begins.
	trailingHeaderPad = 6

	lineOffsetsPreludeSize = 16 // data_block_size(4) + tag(4) + width(4) + height(4)
)

// Record is one parsed-but-undecoded WAD image entry: the header fields,
// raw pixel bytes, optional line-offset table, and the palette id
// selecting which palette decodes it.
type Record struct {
	Name          string
	PixelDataSize uint64
	Height        uint32
	Width         uint32
	ColorDepth    uint16
	PixelData     []byte
	LineOffsets   []uint32 // nil when absent (non-RLE, or height=0)
	PaletteID     uint32
	IsRLE         bool
}

// EntryName implements pathutil.Named.
func (rec Record) EntryName() string { return rec.Name }

// RecordHandler processes one decoded-but-not-yet-image-decoded WAD
// record, given the full palette table it may index into. The handler
// owns rec's buffers only for the duration of the call; Parse discards
// them once it returns, so the caller must finish with a record's buffers
// before returning from the handler.
type RecordHandler func(rec Record, palettes []Palette) error

// Parse reads a WAD archive starting at the reader's current position
// (the caller has already seeked to the WAD's first byte). pixelCounter,
// if non-nil, brackets each record's pixel-data buffer allocation.
func Parse(r *reader.Reader, pixelCounter *memtrack.Counter, onImage RecordHandler) error {
	if err := r.Skip(headerSkipBytes); err != nil {
		return errs.IO(err, "skip WAD header")
	}

	paletteCount, err := r.ReadU32LE()
	if err != nil {
		return errs.IO(err, "read palette_count")
	}
	if paletteCount == 0 {
		return nil
	}

	palettes := make([]Palette, paletteCount)
	for i := range palettes {
		p, err := readPalette(r)
		if err != nil {
			return errs.IO(err, "read palette")
		}
		palettes[i] = p
	}

	imageCount, err := r.ReadU32LE()
	if err != nil {
		return errs.IO(err, "read image_count")
	}
	if imageCount == 0 {
		return nil
	}

	for i := uint32(0); i < imageCount; i++ {
		rec, err := readImageRecord(r, pixelCounter)
		if err != nil {
			return err
		}
		if rec.PaletteID >= paletteCount {
			return errs.Formatf("palette_id %d out of range (have %d palettes)", rec.PaletteID, paletteCount)
		}
		if onImage != nil {
			if err := onImage(rec, palettes); err != nil {
				return err
			}
		}
	}
	return nil
}

func readImageRecord(r *reader.Reader, pixelCounter *memtrack.Counter) (Record, error) {
	nameBuf, err := r.ReadBytes(32)
	if err != nil {
		return Record{}, errs.IO(err, "read image name")
	}
	nameBuf[31] = 0
	name := cStr(nameBuf)

	pixelDataSize, err := r.ReadU64LE()
	if err != nil {
		return Record{}, errs.IO(err, "read pixel_data_size")
	}
	if err := r.Skip(8); err != nil { // unused
		return Record{}, errs.IO(err, "skip unused header field")
	}
	height, err := r.ReadU32LE()
	if err != nil {
		return Record{}, errs.IO(err, "read height")
	}
	width, err := r.ReadU32LE()
	if err != nil {
		return Record{}, errs.IO(err, "read width")
	}
	colorDepth, err := r.ReadU16LE()
	if err != nil {
		return Record{}, errs.IO(err, "read color_depth")
	}

	if err := r.Skip(trailingHeaderPad); err != nil {
		return Record{}, errs.IO(err, "skip trailing header pad")
	}

	if pixelDataSize > (1 << 32) {
		return Record{}, errs.Formatf("pixel_data_size %d is implausibly large", pixelDataSize)
	}
	if pixelCounter != nil {
		release := pixelCounter.Scope(int(pixelDataSize))
		defer release()
	}
	pixelData, err := r.ReadBytes(int(pixelDataSize))
	if err != nil {
		return Record{}, errs.IO(err, "read pixel data")
	}

	isRLE := hasExtension(name, "rle")

	var lineOffsets []uint32
	if isRLE {
		lineOffsets, err = readLineOffsets(r)
		if err != nil {
			return Record{}, err
		}
	}

	paletteID, err := r.ReadU32LE()
	if err != nil {
		return Record{}, errs.IO(err, "read palette_id")
	}

	return Record{
		Name:          name,
		PixelDataSize: pixelDataSize,
		Height:        height,
		Width:         width,
		ColorDepth:    colorDepth,
		PixelData:     pixelData,
		LineOffsets:   lineOffsets,
		PaletteID:     paletteID,
		IsRLE:         isRLE,
	}, nil
}

// readLineOffsets reads the optional per-scanline offset sub-record that
// follows an .rle image's pixel data.
func readLineOffsets(r *reader.Reader) ([]uint32, error) {
	if err := r.Skip(4); err != nil { // data_block_size
		return nil, errs.IO(err, "skip line-offsets data_block_size")
	}
	if err := r.Skip(4); err != nil { // tag
		return nil, errs.IO(err, "skip line-offsets tag")
	}
	if err := r.Skip(4); err != nil { // width
		return nil, errs.IO(err, "skip line-offsets width")
	}
	height, err := r.ReadU32LE()
	if err != nil {
		return nil, errs.IO(err, "read line-offsets height")
	}
	if height == 0 {
		return nil, nil
	}
	offsets := make([]uint32, height)
	for i := range offsets {
		v, err := r.ReadU32LE()
		if err != nil {
			return nil, errs.IO(err, "read line offset value")
		}
		offsets[i] = v
	}
	return offsets, nil
}

// hasExtension reports whether name ends in "."+ext, case-insensitively,
// used to detect the .rle suffix.
func hasExtension(name, ext string) bool {
	if len(name) < len(ext)+1 {
		return false
	}
	suffix := name[len(name)-len(ext)-1:]
	return strings.EqualFold(suffix, "."+ext)
}

func cStr(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
