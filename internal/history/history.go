// Package history keeps a bounded, linear stack of surface snapshots for
// undo and redo.
package history

import (
	"errors"
	"fmt"
	"image"
	"time"
)

// DefaultMaxSize bounds the stack when no size is configured. Each entry is a
// full encoded surface, so the bound is kept small.
const DefaultMaxSize = 20

// ErrInvalidSize is returned for a maximum size below one.
var ErrInvalidSize = errors.New("history: max size must be at least 1")

// Action labels the gesture that produced an entry.
type Action string

const (
	ActionInit   Action = "init"
	ActionStroke Action = "stroke"
	ActionFill   Action = "fill"
	ActionStamp  Action = "stamp"
	ActionClear  Action = "clear"
)

// Entry is one immutable snapshot.
type Entry struct {
	Seq       uint64
	Action    Action
	Data      []byte // PNG encoded surface
	CreatedAt time.Time
}

// Image decodes the snapshot.
func (e Entry) Image() (*image.RGBA, error) {
	return Decode(e.Data)
}

// History is an ordered sequence of entries with a cursor at the entry that
// is currently shown. It is not safe for concurrent use.
type History struct {
	entries []Entry
	cursor  int
	max     int
	seq     uint64
}

// New creates a history seeded with a snapshot of initial.
func New(size int, initial image.Image) (*History, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	h := &History{max: size, cursor: -1}
	if _, err := h.Commit(ActionInit, initial); err != nil {
		return nil, err
	}
	return h, nil
}

// Commit records img as the newest entry. Entries after the cursor are
// discarded first; if the stack then exceeds its maximum the oldest entry is
// evicted. The cursor always ends on the new entry.
func (h *History) Commit(action Action, img image.Image) (Entry, error) {
	data, err := Encode(img)
	if err != nil {
		return Entry{}, fmt.Errorf("history: commit %s: %w", action, err)
	}
	h.seq++
	e := Entry{Seq: h.seq, Action: action, Data: data, CreatedAt: time.Now()}

	h.cursor++
	if h.cursor < len(h.entries) {
		clear(h.entries[h.cursor:])
		h.entries = h.entries[:h.cursor]
	}
	h.entries = append(h.entries, e)

	if len(h.entries) > h.max {
		h.entries[0] = Entry{}
		h.entries = h.entries[1:]
		h.cursor--
	}
	return e, nil
}

// Undo moves the cursor back one entry and returns the entry now current.
// It reports false, leaving the cursor alone, at the oldest entry.
func (h *History) Undo() (Entry, bool) {
	if h.cursor <= 0 {
		return Entry{}, false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// Redo moves the cursor forward one entry, if any remain beyond it.
func (h *History) Redo() (Entry, bool) {
	if h.cursor >= len(h.entries)-1 {
		return Entry{}, false
	}
	h.cursor++
	return h.entries[h.cursor], true
}

// CanUndo reports whether Undo would move the cursor.
func (h *History) CanUndo() bool { return h.cursor > 0 }

// CanRedo reports whether Redo would move the cursor.
func (h *History) CanRedo() bool { return h.cursor < len(h.entries)-1 }

// Current returns the entry at the cursor.
func (h *History) Current() Entry { return h.entries[h.cursor] }

func (h *History) Len() int    { return len(h.entries) }
func (h *History) Cursor() int { return h.cursor }

// Entries returns the entries oldest first. The slice is a copy; the
// snapshot bytes are shared and must not be modified.
func (h *History) Entries() []Entry {
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}
