package usecase

import (
	"sync"
	"time"

	"portfolio-customizer/internal/editor"

	"github.com/google/uuid"
)

// Session is one person's editing of one document. The editor is
// single-threaded, so every access goes through mu.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time

	mu          sync.Mutex
	editor      *editor.Editor
	portfolioID uuid.UUID
	lastAccess  time.Time
}

// Edit runs fn with exclusive access to the editor and returns the view
// afterwards, also when fn fails.
func (s *Session) Edit(fn func(e *editor.Editor) error) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAccess = time.Now()
	err := fn(s.editor)
	return s.view(), err
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAccess = time.Now()
	return s.view()
}

func (s *Session) view() View {
	e := s.editor
	v := View{
		SessionID:  s.ID.String(),
		Selection:  e.Selection(),
		Palette:    e.Palette(),
		CanUndo:    e.History().CanUndo(),
		CanRedo:    e.History().CanRedo(),
		HistoryLen: e.History().Len(),
		Cursor:     e.History().Cursor(),
		HTML:       e.Snapshot(),
	}
	if s.portfolioID != uuid.Nil {
		v.PortfolioID = s.portfolioID.String()
	}
	if t, ok := e.CurrentTheme(); ok {
		v.Theme = t.Name
	}
	return v
}

// SessionStore keeps sessions in memory.
type SessionStore struct {
	sessions map[uuid.UUID]*Session
	mu       sync.RWMutex
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[uuid.UUID]*Session)}
}

// Create registers a session around e.
func (s *SessionStore) Create(e *editor.Editor) *Session {
	now := time.Now()
	sess := &Session{ID: uuid.New(), CreatedAt: now, editor: e, lastAccess: now}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return sess
}

func (s *SessionStore) Get(id uuid.UUID) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

func (s *SessionStore) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep drops sessions idle for longer than maxIdle and reports how many.
func (s *SessionStore) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := sess.lastAccess.Before(cutoff)
		sess.mu.Unlock()
		if idle {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}
