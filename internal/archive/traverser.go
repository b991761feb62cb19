package archive

import (
	"github.com/nmeunpack/nme-unpacker/internal/errs"
	"github.com/nmeunpack/nme-unpacker/internal/reader"
)

// Ref identifies one arena-owned entry together with the arena it lives in,
// enough for a dispatch callback to reconstruct its ancestor chain.
type Ref struct {
	Arena *Arena
	Idx   int
}

// Entry returns the referenced entry.
func (r Ref) Entry() Entry { return r.Arena.Get(r.Idx) }

// FileDispatcher is invoked once per type=file entry with a non-zero size,
// in breadth-first order, with the archive cursor already seeked to the
// entry's offset.
type FileDispatcher func(r *reader.Reader, ref Ref) error

// VerboseSink receives one call per dispatched (non-sentinel) entry, used
// to emit a per-entry metadata log line. Sentinels are never passed here.
type VerboseSink func(e Entry)

// Traverser runs a breadth-first walk: a one-state (running) /
// one-terminal-state (drained) machine over a fixed-capacity queue of
// pending entries.
type Traverser struct {
	r       *reader.Reader
	arena   *Arena
	queue   *Queue
	onFile  FileDispatcher
	verbose VerboseSink
}

// New builds a Traverser over r with the given queue capacity (0 selects
// DefaultQueueCapacity). onFile is invoked for every file entry whose size
// is non-zero; verbose,
// if non-nil, is invoked for every dispatched entry (directories and
// files, never the sentinel).
func New(r *reader.Reader, queueCapacity int, onFile FileDispatcher, verbose VerboseSink) *Traverser {
	return &Traverser{
		r:      r,
		arena:  NewArena(),
		queue:  NewQueue(queueCapacity),
		onFile: onFile,
		verbose: func(e Entry) {
			if verbose != nil {
				verbose(e)
			}
		},
	}
}

// Run performs the full breadth-first traversal starting at absolute
// offset 0, draining the queue before returning. It returns a *errs.Error
// of KindFormat on a corrupt entry type, KindIO on any short read/seek, or
// KindResource if the queue overflows.
func (t *Traverser) Run() error {
	if err := t.r.SeekAbs(0); err != nil {
		return err
	}
	if err := t.readListing(-1); err != nil {
		return err
	}

	for !t.queue.Empty() {
		idx, _ := t.queue.Pop()
		e := t.arena.Get(idx)

		if err := t.r.SeekAbs(int64(e.Offset)); err != nil {
			return err
		}

		switch e.Type {
		case TypeDirectory:
			if err := t.readListing(idx); err != nil {
				return err
			}
		case TypeFile:
			if e.Size != 0 {
				// Zero-size files are skipped without performing any I/O.
				if t.onFile != nil {
					if err := t.onFile(t.r, Ref{Arena: t.arena, Idx: idx}); err != nil {
						return err
					}
				}
			}
		default:
			return errs.Formatf("corrupt directory entry: unexpected type %d at offset %d", e.Type, e.Offset)
		}
		// Logged after dispatch completes, so a file's verbose line always
		// follows any output it produced.
		t.verbose(e)
	}
	return nil
}

// readListing reads entries at the reader's current position until the
// sentinel is seen, enqueuing each non-sentinel entry with the given
// parent arena index (-1 for the root listing).
func (t *Traverser) readListing(parentIdx int) error {
	for {
		raw, err := decodeRawEntry(t.r)
		if err != nil {
			return err
		}
		if raw.Type == TypeSentinel {
			return nil
		}
		idx := t.arena.add(Entry{RawEntry: raw, ParentIdx: parentIdx})
		if err := t.queue.Push(idx); err != nil {
			return err
		}
	}
}
