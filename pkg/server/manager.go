// Package server exposes building sessions over HTTP: a session per caller,
// edit and generate operations against its document, and the compiled
// deliverables as downloads.
package server

import (
	"sync"

	"github.com/google/uuid"

	"instafolio/pkg/compile"
	"instafolio/pkg/document"
	"instafolio/pkg/llm"
	"instafolio/pkg/session"
)

// managedSession pairs one building session with the state the HTTP layer
// needs around it: the lock that keeps the session single-threaded, the
// preview theme, and the in-flight marker for generations running outside
// the lock.
type managedSession struct {
	id    string
	sess  *session.Session
	theme compile.Theme

	mu sync.Mutex
	// busy mirrors the session's in-flight status at the HTTP layer. While
	// set, the document belongs to the generating goroutine: document writes
	// are refused and reads serve the snapshot taken when the generation
	// started.
	busy     session.Status
	snapshot *document.Document
}

// doc returns the document that is safe to read right now. Callers must
// hold mu.
func (ms *managedSession) doc() (doc *document.Document) {
	if ms.busy.Busy {
		doc = ms.snapshot
		return doc
	}
	doc = ms.sess.Doc
	return doc
}

// Manager owns the live sessions. Sessions exist only in memory and only for
// as long as the process runs.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*managedSession

	gen          llm.Generator
	defaultTheme compile.Theme
}

// NewManager creates an empty session store. Every session it creates shares
// the given generator and starts with the given preview theme. A nil
// generator refuses generations until a key is configured.
func NewManager(gen llm.Generator, defaultTheme compile.Theme) (m *Manager) {
	if gen == nil {
		gen = llm.Unconfigured{}
	}
	if defaultTheme == "" {
		defaultTheme = compile.ThemeLight
	}
	m = &Manager{
		sessions:     make(map[string]*managedSession),
		gen:          gen,
		defaultTheme: defaultTheme,
	}
	return m
}

// Create starts a new session from the seeded starter document.
func (m *Manager) Create() (ms *managedSession) {
	ms = &managedSession{
		id:    uuid.NewString(),
		sess:  session.New(nil, m.gen),
		theme: m.defaultTheme,
	}

	m.mu.Lock()
	m.sessions[ms.id] = ms
	m.mu.Unlock()
	return ms
}

// Get looks up a session by ID.
func (m *Manager) Get(id string) (ms *managedSession, found bool) {
	m.mu.RLock()
	ms, found = m.sessions[id]
	m.mu.RUnlock()
	return ms, found
}

// Delete drops a session, reporting whether it existed. A generation still
// running against a dropped session finishes against the orphan and is
// discarded with it.
func (m *Manager) Delete(id string) (removed bool) {
	m.mu.Lock()
	_, removed = m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	return removed
}

// Count reports the number of live sessions.
func (m *Manager) Count() (n int) {
	m.mu.RLock()
	n = len(m.sessions)
	m.mu.RUnlock()
	return n
}
