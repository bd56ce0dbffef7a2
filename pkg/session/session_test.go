package session

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"instafolio/pkg/document"
	"instafolio/pkg/llm"
	"instafolio/pkg/prompt"
)

// fakeGenerator returns canned text or a canned error, and counts calls.
// onGenerate, when set, takes over the response entirely.
type fakeGenerator struct {
	text       string
	err        error
	calls      int
	lastReq    llm.Request
	onGenerate func(req llm.Request) (text string, err error)
}

func (f *fakeGenerator) Generate(_ context.Context, req llm.Request) (text string, err error) {
	f.calls++
	f.lastReq = req
	if f.onGenerate != nil {
		text, err = f.onGenerate(req)
		return text, err
	}
	text = f.text
	err = f.err
	return text, err
}

func TestNewDefaults(t *testing.T) {
	sess := New(nil, nil)

	// Nil document falls back to the starter.
	if sess.Doc == nil {
		t.Fatal("Expected non-nil document")
	}

	if sess.Doc.Personal.Name != "Student Name" {
		t.Errorf("Expected starter document, got name '%s'", sess.Doc.Personal.Name)
	}

	// Nil generator refuses generations instead of panicking.
	err := sess.Generate(context.Background(), SummaryRequest{})
	if !errors.Is(err, llm.ErrNotConfigured) {
		t.Errorf("Expected ErrNotConfigured, got %v", err)
	}
}

func TestGenerateSummary(t *testing.T) {
	gen := &fakeGenerator{text: "A sharper summary."}
	sess := New(document.Starter(), gen)

	err := sess.Generate(context.Background(), SummaryRequest{})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if sess.Doc.Summary != "A sharper summary." {
		t.Errorf("Expected summary overwritten, got '%s'", sess.Doc.Summary)
	}

	if gen.calls != 1 {
		t.Errorf("Expected 1 generator call, got %d", gen.calls)
	}

	if !strings.Contains(gen.lastReq.SystemInstruction, "world-class resume writer") {
		t.Error("Summary flow should use the resume writer instruction")
	}
}

func TestGenerateSkillsMerge(t *testing.T) {
	doc := document.New()
	doc.Skills = []string{"Python", "SQL"}

	gen := &fakeGenerator{text: "Kubernetes, Python ,DevOps, ,"}
	sess := New(doc, gen)

	err := sess.Generate(context.Background(), SkillsRequest{})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// Existing skills keep their positions, new ones append in response
	// order, duplicates and blanks are dropped.
	expected := []string{"Python", "SQL", "Kubernetes", "DevOps"}
	if len(doc.Skills) != len(expected) {
		t.Fatalf("Expected %d skills, got %d: %v", len(expected), len(doc.Skills), doc.Skills)
	}

	for i, want := range expected {
		if doc.Skills[i] != want {
			t.Errorf("Expected skill %d to be '%s', got '%s'", i, want, doc.Skills[i])
		}
	}
}

func TestRefineExperience(t *testing.T) {
	doc := document.New()
	first := doc.AddExperience("Intern", "Acme", "2024", "did x\ndid y")
	second := doc.AddExperience("Analyst", "Globex", "2023", "did z")

	gen := &fakeGenerator{text: "Led x initiative.\nDelivered y ahead of schedule."}
	sess := New(doc, gen)

	err := sess.Generate(context.Background(), ExperienceRefinement{EntryID: first.ID})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	refined, _ := doc.ExperienceByID(first.ID)
	if refined.Bullets != "Led x initiative.\nDelivered y ahead of schedule." {
		t.Errorf("Expected bullets replaced, got '%s'", refined.Bullets)
	}

	// The other entry is untouched.
	other, _ := doc.ExperienceByID(second.ID)
	if other.Bullets != "did z" {
		t.Errorf("Expected other entry untouched, got '%s'", other.Bullets)
	}

	if !strings.Contains(gen.lastReq.UserPrompt, "Title: Intern") {
		t.Error("Refinement prompt should carry the entry title")
	}
}

func TestRefineExperienceUnknownID(t *testing.T) {
	gen := &fakeGenerator{text: "unused"}
	sess := New(document.Starter(), gen)

	err := sess.Generate(context.Background(), ExperienceRefinement{EntryID: 999})
	if err == nil {
		t.Fatal("Expected error for unknown entry, got nil")
	}

	if !prompt.IsValidation(err) {
		t.Errorf("Expected validation error, got %v", err)
	}

	if gen.calls != 0 {
		t.Errorf("Expected no generator calls, got %d", gen.calls)
	}
}

func TestRefineExperienceNoRawInput(t *testing.T) {
	doc := document.New()
	entry := doc.AddExperience("Intern", "Acme", "2024", "")

	gen := &fakeGenerator{text: "unused"}
	sess := New(doc, gen)

	err := sess.Generate(context.Background(), ExperienceRefinement{EntryID: entry.ID})
	if err == nil {
		t.Fatal("Expected error for empty bullets, got nil")
	}

	if !prompt.IsValidation(err) {
		t.Errorf("Expected validation error, got %v", err)
	}

	if err.Error() != "No raw input to refine." {
		t.Errorf("Expected refine message, got '%s'", err.Error())
	}

	if gen.calls != 0 {
		t.Errorf("Expected no generator calls, got %d", gen.calls)
	}
}

func TestRefinePortfolio(t *testing.T) {
	doc := document.New()
	entry := doc.AddPortfolio("Resume Builder", "https://example.com", "rough notes")

	gen := &fakeGenerator{text: "Built a resume generator with automated content refinement."}
	sess := New(doc, gen)

	err := sess.Generate(context.Background(), PortfolioRefinement{EntryID: entry.ID})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	refined, _ := doc.PortfolioByID(entry.ID)
	if refined.Description != "Built a resume generator with automated content refinement." {
		t.Errorf("Expected description replaced, got '%s'", refined.Description)
	}
}

func TestGenerateCoverLetter(t *testing.T) {
	doc := document.Starter()
	doc.CoverLetter.Company = "Globex"
	doc.CoverLetter.Title = "Cloud Engineer"

	gen := &fakeGenerator{text: "Dear Hiring Manager,\n\nI am excited to apply."}
	sess := New(doc, gen)

	err := sess.Generate(context.Background(), CoverLetterRequest{})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if doc.CoverLetter.Draft != "Dear Hiring Manager,\n\nI am excited to apply." {
		t.Errorf("Expected draft overwritten, got '%s'", doc.CoverLetter.Draft)
	}

	if !strings.Contains(gen.lastReq.UserPrompt, "Target Company: Globex") {
		t.Error("Cover letter prompt should carry the target company")
	}
}

func TestCoverLetterMissingTargets(t *testing.T) {
	doc := document.Starter()

	gen := &fakeGenerator{text: "unused"}
	sess := New(doc, gen)

	err := sess.Generate(context.Background(), CoverLetterRequest{})
	if err == nil {
		t.Fatal("Expected validation error, got nil")
	}

	if !prompt.IsValidation(err) {
		t.Errorf("Expected validation error, got %v", err)
	}

	// The message lands in the draft so the user sees what to fix.
	if doc.CoverLetter.Draft != "Please enter both Target Company and Job Title." {
		t.Errorf("Expected targeting message in draft, got '%s'", doc.CoverLetter.Draft)
	}

	if gen.calls != 0 {
		t.Errorf("Expected no generator calls, got %d", gen.calls)
	}
}

func TestDocumentUnchangedOnFailure(t *testing.T) {
	doc := document.Starter()
	doc.CoverLetter.Company = "Globex"
	doc.CoverLetter.Title = "Cloud Engineer"

	expID := doc.Experience[0].ID
	portID := doc.Portfolio[0].ID

	tests := []struct {
		name string
		req  Request
	}{
		{name: "summary", req: SummaryRequest{}},
		{name: "skills", req: SkillsRequest{}},
		{name: "experience", req: ExperienceRefinement{EntryID: expID}},
		{name: "portfolio", req: PortfolioRefinement{EntryID: portID}},
		{name: "cover letter", req: CoverLetterRequest{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before, err := json.Marshal(doc)
			if err != nil {
				t.Fatalf("Failed to snapshot document: %v", err)
			}

			gen := &fakeGenerator{err: errors.New("service down")}
			sess := New(doc, gen)

			err = sess.Generate(context.Background(), tt.req)
			if err == nil {
				t.Fatal("Expected error from failing generator, got nil")
			}

			after, err := json.Marshal(doc)
			if err != nil {
				t.Fatalf("Failed to snapshot document: %v", err)
			}

			if string(before) != string(after) {
				t.Errorf("Document changed on failed generation:\nbefore: %s\nafter:  %s", before, after)
			}
		})
	}
}

func TestInFlightCleared(t *testing.T) {
	// Cleared after success.
	sess := New(document.Starter(), &fakeGenerator{text: "ok"})
	_ = sess.Generate(context.Background(), SummaryRequest{})
	if sess.Status().Busy {
		t.Error("Expected in-flight marker cleared after success")
	}

	// Cleared after failure.
	sess = New(document.Starter(), &fakeGenerator{err: errors.New("boom")})
	_ = sess.Generate(context.Background(), SummaryRequest{})
	if sess.Status().Busy {
		t.Error("Expected in-flight marker cleared after failure")
	}
}

func TestReentrancyRejected(t *testing.T) {
	gen := &fakeGenerator{}
	sess := New(document.Starter(), gen)

	var innerErr error
	gen.onGenerate = func(_ llm.Request) (text string, err error) {
		// A second request while this one is running must be rejected.
		innerErr = sess.Generate(context.Background(), SkillsRequest{})
		text = "outer result"
		return text, err
	}

	err := sess.Generate(context.Background(), SummaryRequest{})
	if err != nil {
		t.Fatalf("Outer generate failed: %v", err)
	}

	if !errors.Is(innerErr, ErrGenerationInFlight) {
		t.Errorf("Expected ErrGenerationInFlight, got %v", innerErr)
	}

	if sess.Doc.Summary != "outer result" {
		t.Errorf("Expected outer result merged, got '%s'", sess.Doc.Summary)
	}

	if gen.calls != 1 {
		t.Errorf("Expected 1 generator call, got %d", gen.calls)
	}
}

func TestStatusDuringGeneration(t *testing.T) {
	doc := document.Starter()
	entryID := doc.Experience[0].ID

	gen := &fakeGenerator{}
	sess := New(doc, gen)

	var seen Status
	gen.onGenerate = func(_ llm.Request) (text string, err error) {
		seen = sess.Status()
		text = "refined"
		return text, err
	}

	err := sess.Generate(context.Background(), ExperienceRefinement{EntryID: entryID})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !seen.Busy {
		t.Error("Expected busy status during generation")
	}

	if seen.UseCase != UseExperience {
		t.Errorf("Expected use case '%s', got '%s'", UseExperience, seen.UseCase)
	}

	if seen.EntryID != entryID {
		t.Errorf("Expected entry ID %d, got %d", entryID, seen.EntryID)
	}
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		name     string
		req      Request
		expected Status
	}{
		{
			name:     "summary",
			req:      SummaryRequest{},
			expected: Status{Busy: true, UseCase: UseSummary},
		},
		{
			name:     "skills",
			req:      SkillsRequest{},
			expected: Status{Busy: true, UseCase: UseSkills},
		},
		{
			name:     "experience carries entry id",
			req:      ExperienceRefinement{EntryID: 7},
			expected: Status{Busy: true, UseCase: UseExperience, EntryID: 7},
		},
		{
			name:     "portfolio carries entry id",
			req:      PortfolioRefinement{EntryID: 3},
			expected: Status{Busy: true, UseCase: UsePortfolio, EntryID: 3},
		},
		{
			name:     "cover letter",
			req:      CoverLetterRequest{},
			expected: Status{Busy: true, UseCase: UseCoverLetter},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status := StatusFor(tc.req)
			if status != tc.expected {
				t.Errorf("Expected status %+v, got %+v", tc.expected, status)
			}
		})
	}
}

func TestRequestFor(t *testing.T) {
	cases := []struct {
		name     string
		useCase  UseCase
		entryID  int64
		expected Request
	}{
		{name: "summary", useCase: UseSummary, expected: SummaryRequest{}},
		{name: "skills", useCase: UseSkills, expected: SkillsRequest{}},
		{name: "experience", useCase: UseExperience, entryID: 4, expected: ExperienceRefinement{EntryID: 4}},
		{name: "portfolio", useCase: UsePortfolio, entryID: 2, expected: PortfolioRefinement{EntryID: 2}},
		{name: "cover letter", useCase: UseCoverLetter, expected: CoverLetterRequest{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := RequestFor(tc.useCase, tc.entryID)
			if err != nil {
				t.Fatalf("RequestFor failed: %s", err)
			}
			if req != tc.expected {
				t.Errorf("Expected %#v, got %#v", tc.expected, req)
			}
		})
	}

	_, err := RequestFor("poetry", 0)
	if err == nil {
		t.Errorf("Expected unknown use case to fail")
	}
}

func TestResultFor(t *testing.T) {
	doc := document.Starter()
	doc.Summary = "The summary."
	doc.CoverLetter.Draft = "The letter."

	if got := ResultFor(doc, UseSummary, 0); got != "The summary." {
		t.Errorf("Expected summary result, got %q", got)
	}

	if got := ResultFor(doc, UseCoverLetter, 0); got != "The letter." {
		t.Errorf("Expected cover letter result, got %q", got)
	}

	if got := ResultFor(doc, UseExperience, 1); got != doc.Experience[0].Bullets {
		t.Errorf("Expected experience bullets, got %q", got)
	}

	if got := ResultFor(doc, UseExperience, 99); got != "" {
		t.Errorf("Expected empty result for vanished entry, got %q", got)
	}

	if got := ResultFor(doc, UsePortfolio, 1); got != doc.Portfolio[0].Description {
		t.Errorf("Expected portfolio description, got %q", got)
	}

	skills := ResultFor(doc, UseSkills, 0)
	if !strings.Contains(skills, ", ") {
		t.Errorf("Expected joined skill list, got %q", skills)
	}
}
