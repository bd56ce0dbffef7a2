package server

import (
	"context"
	"sync"
	"testing"

	"instafolio/pkg/compile"
	"instafolio/pkg/llm"
	"instafolio/pkg/session"
)

func TestManagerCreate(t *testing.T) {
	m := NewManager(llm.Unconfigured{}, compile.ThemeDark)

	ms := m.Create()
	if ms.id == "" {
		t.Errorf("Expected a session ID")
	}

	if ms.theme != compile.ThemeDark {
		t.Errorf("Expected default theme dark, got %s", ms.theme)
	}

	if ms.sess.Doc.Personal.Name != "Student Name" {
		t.Errorf("Expected session to start from the starter document, got %q", ms.sess.Doc.Personal.Name)
	}

	if m.Count() != 1 {
		t.Errorf("Expected 1 live session, got %d", m.Count())
	}
}

func TestManagerDefaults(t *testing.T) {
	m := NewManager(nil, "")

	ms := m.Create()
	if ms.theme != compile.ThemeLight {
		t.Errorf("Expected light theme fallback, got %s", ms.theme)
	}

	// A nil generator refuses generations rather than panicking.
	err := ms.sess.Generate(context.Background(), session.SummaryRequest{})
	if err == nil {
		t.Errorf("Expected unconfigured generation to fail")
	}
}

func TestManagerGetAndDelete(t *testing.T) {
	m := NewManager(llm.Unconfigured{}, compile.ThemeLight)
	ms := m.Create()

	got, found := m.Get(ms.id)
	if !found {
		t.Fatalf("Expected to find session %s", ms.id)
	}
	if got != ms {
		t.Errorf("Expected the same managed session back")
	}

	if _, found = m.Get("unknown"); found {
		t.Errorf("Expected unknown ID to miss")
	}

	if !m.Delete(ms.id) {
		t.Errorf("Expected delete to report removal")
	}

	if m.Delete(ms.id) {
		t.Errorf("Expected second delete to report false")
	}

	if m.Count() != 0 {
		t.Errorf("Expected 0 live sessions, got %d", m.Count())
	}
}

func TestManagerDistinctIDs(t *testing.T) {
	m := NewManager(llm.Unconfigured{}, compile.ThemeLight)

	seen := make(map[string]struct{})
	for i := 0; i < 20; i++ {
		ms := m.Create()
		if _, dup := seen[ms.id]; dup {
			t.Fatalf("Duplicate session ID %s", ms.id)
		}
		seen[ms.id] = struct{}{}
	}
}

func TestManagerConcurrentAccess(t *testing.T) {
	m := NewManager(llm.Unconfigured{}, compile.ThemeLight)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ms := m.Create()
			if _, found := m.Get(ms.id); !found {
				t.Errorf("Expected to find freshly created session")
			}
			m.Delete(ms.id)
		}()
	}
	wg.Wait()

	if m.Count() != 0 {
		t.Errorf("Expected all sessions removed, got %d", m.Count())
	}
}

func TestManagedSessionDocServesSnapshotWhileBusy(t *testing.T) {
	m := NewManager(llm.Unconfigured{}, compile.ThemeLight)
	ms := m.Create()

	ms.mu.Lock()
	defer ms.mu.Unlock()

	if ms.doc() != ms.sess.Doc {
		t.Errorf("Expected live document while idle")
	}

	snapshot := ms.sess.Doc.Clone()
	ms.busy = session.Status{Busy: true, UseCase: session.UseSummary}
	ms.snapshot = snapshot

	if ms.doc() != snapshot {
		t.Errorf("Expected snapshot while busy")
	}

	ms.busy = session.Status{}
	ms.snapshot = nil

	if ms.doc() != ms.sess.Doc {
		t.Errorf("Expected live document after the flow ends")
	}
}

func TestManagedSessionTracksBusyStatus(t *testing.T) {
	m := NewManager(llm.Unconfigured{}, compile.ThemeLight)
	ms := m.Create()

	ms.mu.Lock()
	ms.busy = session.StatusFor(session.PortfolioRefinement{EntryID: 1})
	status := ms.busy
	ms.mu.Unlock()

	if !status.Busy || status.UseCase != session.UsePortfolio || status.EntryID != 1 {
		t.Errorf("Expected busy portfolio status for entry 1, got %+v", status)
	}
}
