// Package prompt builds the generation requests behind each assisted writing
// flow. Every builder pairs a fixed system instruction with a user prompt
// assembled from document fields, and validates that the document carries
// enough material to work from.
package prompt

import (
	"fmt"
	"strings"

	"instafolio/pkg/document"
	"instafolio/pkg/llm"
)

// System instructions, one per flow. These set the persona and output
// contract; the user prompt carries the document data.
const (
	summaryInstruction = "You are a world-class resume writer. Generate a concise, 3-4 sentence professional summary based on the provided experience and education. Use strong action verbs and highlight key skills (AI, Cloud, Python, Web Dev). Do not include any introductory phrases, just the summary text."

	skillsInstruction = "You are an AI career coach. Based on the user's current skills and their AI/Cloud internship focus, suggest 5-8 additional, relevant, high-demand skills that they should include. Provide the new skills as a comma-separated list ONLY, with no introductory text or numbering. Examples: Kubernetes, DevOps, PostgreSQL, Agile Methodology."

	experienceInstruction = "You are an expert resume optimizer. Rewrite the following raw achievement points into 3-5 professional, high-impact bullet points. Each point must start with a strong action verb and include quantifiable results where possible. Return only the bullet points, each separated by a newline."

	portfolioInstruction = "You are a professional portfolio project describer. Write a concise, one-sentence description for a technical portfolio project. Focus on the tools used, the problem solved, and the impact. Return only the single sentence description."

	coverLetterInstruction = "You are a highly skilled professional cover letter writer. Draft a formal, three-paragraph cover letter using the provided resume data, tailored for the specific job title and company. The tone must be professional and enthusiastic, highlighting how the candidate's experience (especially AI/Cloud) directly benefits the target company. Use proper salutations."
)

// Summary builds the professional-summary request from the document's
// education and experience sections.
func Summary(doc *document.Document) (req llm.Request) {
	eduParts := make([]string, 0, len(doc.Education))
	for _, e := range doc.Education {
		eduParts = append(eduParts, fmt.Sprintf("%s from %s", e.Degree, e.Institution))
	}

	expParts := make([]string, 0, len(doc.Experience))
	for _, e := range doc.Experience {
		expParts = append(expParts, fmt.Sprintf("%s at %s. Key points: %s", e.Title, e.Company, e.Bullets))
	}

	req = llm.Request{
		SystemInstruction: summaryInstruction,
		UserPrompt: fmt.Sprintf("Generate a summary for the following: \n\nEducation: %s\n\nExperience: %s",
			strings.Join(eduParts, "; "), strings.Join(expParts, "; ")),
	}
	return req
}

// SkillSuggestions builds the skill-suggestion request from the current
// skill list.
func SkillSuggestions(doc *document.Document) (req llm.Request) {
	req = llm.Request{
		SystemInstruction: skillsInstruction,
		UserPrompt: fmt.Sprintf("Current Skills: %s\nFocus: AI and Cloud Intern",
			strings.Join(doc.Skills, ", ")),
	}
	return req
}

// RefineExperience builds the bullet-rewriting request for one experience
// entry. The entry must carry raw bullet text to refine.
func RefineExperience(entry document.ExperienceEntry) (req llm.Request, err error) {
	if entry.Bullets == "" {
		err = &ValidationError{Reason: "No raw input to refine."}
		return req, err
	}

	req = llm.Request{
		SystemInstruction: experienceInstruction,
		UserPrompt:        fmt.Sprintf("Title: %s\nRaw Points:\n%s", entry.Title, entry.Bullets),
	}
	return req, err
}

// RefinePortfolio builds the description-writing request for one portfolio
// entry. The entry must carry an existing description to work from.
func RefinePortfolio(entry document.PortfolioEntry) (req llm.Request, err error) {
	if entry.Description == "" {
		err = &ValidationError{Reason: "No raw input to refine."}
		return req, err
	}

	req = llm.Request{
		SystemInstruction: portfolioInstruction,
		UserPrompt:        fmt.Sprintf("Project Name: %s\nExisting Description (if any): %s", entry.Name, entry.Description),
	}
	return req, err
}

// CoverLetter builds the cover-letter drafting request. Both the target
// company and the target job title must be set.
func CoverLetter(doc *document.Document) (req llm.Request, err error) {
	if doc.CoverLetter.Company == "" || doc.CoverLetter.Title == "" {
		err = &ValidationError{Reason: "Please enter both Target Company and Job Title."}
		return req, err
	}

	expLines := make([]string, 0, len(doc.Experience))
	for _, e := range doc.Experience {
		expLines = append(expLines, fmt.Sprintf("%s at %s (%s): %s", e.Title, e.Company, e.Dates, e.Bullets))
	}

	userPrompt := fmt.Sprintf(`Draft a cover letter for the following job application:

Target Company: %s
Target Job Title: %s
Candidate Name: %s
Candidate Email: %s
Candidate LinkedIn: %s
Candidate Professional Summary: %s
Candidate Relevant Experience (Key Points):
- %s
`,
		doc.CoverLetter.Company, doc.CoverLetter.Title,
		doc.Personal.Name, doc.Personal.Email, doc.Personal.LinkedIn,
		doc.Summary, strings.Join(expLines, "\n- "))

	req = llm.Request{
		SystemInstruction: coverLetterInstruction,
		UserPrompt:        userPrompt,
	}
	return req, err
}
