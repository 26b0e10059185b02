// Package editor implements the portfolio customizer core: element
// addressing, selection, in-place mutation of the live document and a
// whole-document snapshot history.
package editor

import (
	"errors"
	"log/slog"
	"time"
)

// Errors carrying a message meant for the person editing.
var (
	ErrNoSelection      = errors.New("Please select an element first")
	ErrNotFound         = errors.New("The element could not be found in the document")
	ErrNotContainer     = errors.New("Please select a container element like a grid or section first")
	ErrEmptyContainer   = errors.New("The selected container has no children to clone")
	ErrProtectedElement = errors.New("This element cannot be removed")
	ErrNoHead           = errors.New("The document has no head element")
)

// Editor holds one document, its history and the current selection. It is
// not safe for concurrent use.
type Editor struct {
	doc       DocumentService
	history   *History
	sel       *Selection
	styles    StyleResolver
	container ContainerFunc
	palette   Palette
	logger    *slog.Logger
	now       func() time.Time
}

type Option func(*Editor)

func WithStyleResolver(r StyleResolver) Option {
	return func(e *Editor) { e.styles = r }
}

func WithContainerFunc(f ContainerFunc) Option {
	return func(e *Editor) { e.container = f }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) { e.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(e *Editor) { e.now = now }
}

// WithDocument swaps the default x/net/html document service.
func WithDocument(d DocumentService) Option {
	return func(e *Editor) { e.doc = d }
}

// New loads snapshot as the first history entry.
func New(snapshot string, opts ...Option) (*Editor, error) {
	e := &Editor{
		styles:    SheetResolver{},
		container: DefaultContainer,
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, o := range opts {
		o(e)
	}
	if e.doc == nil {
		e.doc = &Document{}
	}
	if err := e.doc.Load(snapshot); err != nil {
		return nil, err
	}
	s, err := e.serialize()
	if err != nil {
		return nil, err
	}
	e.history = NewHistory(s)
	e.syncPalette()
	return e, nil
}

// Snapshot is the document at the history cursor.
func (e *Editor) Snapshot() string { return e.history.Current() }

func (e *Editor) History() *History { return e.history }

func (e *Editor) Document() DocumentService { return e.doc }

// serialize renders the live tree without the selection marker.
func (e *Editor) serialize() (string, error) {
	if e.sel != nil {
		removeClass(e.sel.Node, SelectedClass)
		defer addClass(e.sel.Node, SelectedClass)
	}
	return e.doc.Serialize()
}

// commit records the live tree as a snapshot and, if it changed anything,
// reloads the document from it.
func (e *Editor) commit() error {
	s, err := e.serialize()
	if err != nil {
		return err
	}
	if !e.history.Commit(s) {
		return nil
	}
	return e.replace(s)
}

// replace loads snapshot and re-resolves the previous selection by path.
// Load returning is the render-complete signal.
func (e *Editor) replace(snapshot string) error {
	var path ElementPath
	if e.sel != nil {
		path = ComputePath(e.sel.Node)
	}
	e.sel = nil
	if err := e.doc.Load(snapshot); err != nil {
		return err
	}
	e.syncPalette()
	if len(path) == 0 {
		return nil
	}
	if n, ok := e.doc.QueryNode(path); ok {
		e.selectNode(n)
		return nil
	}
	e.logger.Debug("selection did not survive reload", "path", path.String())
	return nil
}

// syncPalette derives the shell colors from the theme baked into the
// loaded document.
func (e *Editor) syncPalette() {
	e.palette = Palette{}
	if t, ok := e.CurrentTheme(); ok {
		e.palette, _ = ShellPalette(t)
	}
}

// Undo steps the cursor back and reloads. It reports false at the start of
// history.
func (e *Editor) Undo() (bool, error) {
	s, ok := e.history.Undo()
	if !ok {
		return false, nil
	}
	return true, e.replace(s)
}

func (e *Editor) Redo() (bool, error) {
	s, ok := e.history.Redo()
	if !ok {
		return false, nil
	}
	return true, e.replace(s)
}
