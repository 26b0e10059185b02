package editor

// History is a linear list of whole-document snapshots with a cursor.
// Committing after an undo discards the redoable tail.
type History struct {
	entries []string
	cursor  int
}

func NewHistory(initial string) *History {
	return &History{entries: []string{initial}}
}

// Commit appends s after the cursor. It reports false and changes nothing
// when s equals the snapshot at the cursor.
func (h *History) Commit(s string) bool {
	if h.entries[h.cursor] == s {
		return false
	}
	h.entries = append(h.entries[:h.cursor+1:h.cursor+1], s)
	h.cursor = len(h.entries) - 1
	return true
}

func (h *History) Undo() (string, bool) {
	if h.cursor == 0 {
		return "", false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

func (h *History) Redo() (string, bool) {
	if h.cursor >= len(h.entries)-1 {
		return "", false
	}
	h.cursor++
	return h.entries[h.cursor], true
}

func (h *History) Current() string { return h.entries[h.cursor] }
func (h *History) Cursor() int     { return h.cursor }
func (h *History) Len() int        { return len(h.entries) }
func (h *History) CanUndo() bool   { return h.cursor > 0 }
func (h *History) CanRedo() bool   { return h.cursor < len(h.entries)-1 }
