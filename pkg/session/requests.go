package session

import (
	"strings"

	"github.com/pkg/errors"

	"instafolio/pkg/document"
)

// UseCase names one assisted writing flow.
type UseCase string

// The five flows a session can run.
const (
	UseSummary     UseCase = "summary"
	UseSkills      UseCase = "skills"
	UseExperience  UseCase = "experience"
	UsePortfolio   UseCase = "portfolio"
	UseCoverLetter UseCase = "cover-letter"
)

// Request selects which flow Generate runs. The interface is sealed: the
// five request types in this package are the only implementations, so a
// type switch over them is exhaustive.
type Request interface {
	useCase() UseCase
}

// SummaryRequest asks for a fresh professional summary built from the
// document's education and experience.
type SummaryRequest struct{}

// SkillsRequest asks for additional skill suggestions to union into the
// skill list.
type SkillsRequest struct{}

// ExperienceRefinement asks for the bullets of one experience entry to be
// rewritten.
type ExperienceRefinement struct {
	EntryID int64
}

// PortfolioRefinement asks for the description of one portfolio entry to be
// rewritten.
type PortfolioRefinement struct {
	EntryID int64
}

// CoverLetterRequest asks for a cover letter draft targeted at the
// document's cover-letter company and title.
type CoverLetterRequest struct{}

func (SummaryRequest) useCase() UseCase       { return UseSummary }
func (SkillsRequest) useCase() UseCase        { return UseSkills }
func (ExperienceRefinement) useCase() UseCase { return UseExperience }
func (PortfolioRefinement) useCase() UseCase  { return UsePortfolio }
func (CoverLetterRequest) useCase() UseCase   { return UseCoverLetter }

// RequestFor maps a use-case tag from the wire or the command line to the
// typed request the pipeline runs. The entry ID is only meaningful for the
// refinement flows.
func RequestFor(useCase UseCase, entryID int64) (req Request, err error) {
	switch useCase {
	case UseSummary:
		req = SummaryRequest{}
	case UseSkills:
		req = SkillsRequest{}
	case UseExperience:
		req = ExperienceRefinement{EntryID: entryID}
	case UsePortfolio:
		req = PortfolioRefinement{EntryID: entryID}
	case UseCoverLetter:
		req = CoverLetterRequest{}
	default:
		err = errors.Errorf("unknown use case %q", useCase)
	}
	return req, err
}

// ResultFor reads the value a finished flow merged into the document.
func ResultFor(doc *document.Document, useCase UseCase, entryID int64) (result string) {
	switch useCase {
	case UseSummary:
		result = doc.Summary
	case UseSkills:
		result = strings.Join(doc.Skills, ", ")
	case UseExperience:
		if entry, found := doc.ExperienceByID(entryID); found {
			result = entry.Bullets
		}
	case UsePortfolio:
		if entry, found := doc.PortfolioByID(entryID); found {
			result = entry.Description
		}
	case UseCoverLetter:
		result = doc.CoverLetter.Draft
	}
	return result
}
