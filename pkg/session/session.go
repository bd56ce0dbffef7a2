// Package session runs the generation pipeline: it builds the prompt for a
// requested flow, calls the generator, and merges the result into the
// document. The document is only ever touched on success, so a failed
// generation leaves it exactly as it was.
package session

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"instafolio/pkg/document"
	"instafolio/pkg/llm"
	"instafolio/pkg/prompt"
)

// ErrGenerationInFlight is returned when Generate is called on a session
// that is already generating.
var ErrGenerationInFlight = errors.New("a generation is already in flight for this session")

// Status reports what a session is generating, if anything. EntryID is set
// only for the per-entry refinement flows.
type Status struct {
	Busy    bool    `json:"busy"`
	UseCase UseCase `json:"use_case,omitempty"`
	EntryID int64   `json:"entry_id,omitempty"`
}

// StatusFor returns the in-flight status a session publishes while it runs
// the given request.
func StatusFor(req Request) (status Status) {
	status = Status{Busy: true, UseCase: req.useCase()}
	switch r := req.(type) {
	case ExperienceRefinement:
		status.EntryID = r.EntryID
	case PortfolioRefinement:
		status.EntryID = r.EntryID
	}
	return status
}

// Session owns one document and drives generations against it.
type Session struct {
	Doc *document.Document

	gen    llm.Generator
	status Status
}

// New creates a session around the given document. A nil document starts
// from the seeded starter; a nil generator refuses every generation with
// ErrNotConfigured.
func New(doc *document.Document, gen llm.Generator) (sess *Session) {
	if doc == nil {
		doc = document.Starter()
	}
	if gen == nil {
		gen = llm.Unconfigured{}
	}
	sess = &Session{
		Doc: doc,
		gen: gen,
	}
	return sess
}

// Status returns the current in-flight state.
func (s *Session) Status() (status Status) {
	status = s.status
	return status
}

// Generate runs one flow to completion. Only one generation may run at a
// time; a second call while one is in flight fails with
// ErrGenerationInFlight. The in-flight marker is cleared however the flow
// ends.
func (s *Session) Generate(ctx context.Context, req Request) (err error) {
	if s.status.Busy {
		err = errors.Wrapf(ErrGenerationInFlight, "%s in progress", s.status.UseCase)
		return err
	}

	s.status = StatusFor(req)
	defer func() {
		s.status = Status{}
	}()

	switch r := req.(type) {
	case SummaryRequest:
		err = s.generateSummary(ctx)
	case SkillsRequest:
		err = s.generateSkills(ctx)
	case ExperienceRefinement:
		err = s.refineExperience(ctx, r.EntryID)
	case PortfolioRefinement:
		err = s.refinePortfolio(ctx, r.EntryID)
	case CoverLetterRequest:
		err = s.generateCoverLetter(ctx)
	default:
		err = errors.Errorf("unsupported request type %T", req)
	}
	return err
}

// generateSummary overwrites the document summary with the generated text.
func (s *Session) generateSummary(ctx context.Context) (err error) {
	var text string
	text, err = s.gen.Generate(ctx, prompt.Summary(s.Doc))
	if err != nil {
		err = errors.Wrap(err, "summary generation failed")
		return err
	}

	s.Doc.Summary = text
	return err
}

// generateSkills splits the suggestion line on commas and unions the items
// into the skill list. Skills already present keep their positions.
func (s *Session) generateSkills(ctx context.Context) (err error) {
	var text string
	text, err = s.gen.Generate(ctx, prompt.SkillSuggestions(s.Doc))
	if err != nil {
		err = errors.Wrap(err, "skill suggestion failed")
		return err
	}

	s.Doc.MergeSkills(document.SplitCommaList(text))
	return err
}

// refineExperience replaces the bullets of one experience entry with the
// generated rewrite.
func (s *Session) refineExperience(ctx context.Context, id int64) (err error) {
	entry, found := s.Doc.ExperienceByID(id)
	if !found {
		err = &prompt.ValidationError{Reason: fmt.Sprintf("no experience entry with id %d", id)}
		return err
	}

	var req llm.Request
	req, err = prompt.RefineExperience(entry)
	if err != nil {
		return err
	}

	var text string
	text, err = s.gen.Generate(ctx, req)
	if err != nil {
		err = errors.Wrap(err, "experience refinement failed")
		return err
	}

	s.Doc.SetExperienceBullets(id, text)
	return err
}

// refinePortfolio replaces the description of one portfolio entry with the
// generated rewrite.
func (s *Session) refinePortfolio(ctx context.Context, id int64) (err error) {
	entry, found := s.Doc.PortfolioByID(id)
	if !found {
		err = &prompt.ValidationError{Reason: fmt.Sprintf("no portfolio entry with id %d", id)}
		return err
	}

	var req llm.Request
	req, err = prompt.RefinePortfolio(entry)
	if err != nil {
		return err
	}

	var text string
	text, err = s.gen.Generate(ctx, req)
	if err != nil {
		err = errors.Wrap(err, "portfolio refinement failed")
		return err
	}

	s.Doc.SetPortfolioDescription(id, text)
	return err
}

// generateCoverLetter overwrites the cover letter draft with the generated
// text. When the targeting inputs are incomplete, the validation message is
// written to the draft so the user sees what to fix, and no generation runs.
func (s *Session) generateCoverLetter(ctx context.Context) (err error) {
	var req llm.Request
	req, err = prompt.CoverLetter(s.Doc)
	if err != nil {
		if prompt.IsValidation(err) {
			s.Doc.CoverLetter.Draft = err.Error()
		}
		return err
	}

	var text string
	text, err = s.gen.Generate(ctx, req)
	if err != nil {
		err = errors.Wrap(err, "cover letter generation failed")
		return err
	}

	s.Doc.CoverLetter.Draft = text
	return err
}
