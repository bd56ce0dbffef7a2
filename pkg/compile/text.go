package compile

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"instafolio/pkg/document"
)

// Text compiles the document into a plain-text resume. Sections always
// appear, in fixed order, even when empty, so the layout is stable as the
// document fills in.
func Text(doc *document.Document) (out string) {
	lines := []string{}

	// Header
	lines = append(lines, strings.ToUpper(doc.Personal.Name))
	lines = append(lines, strings.Repeat("=", utf8.RuneCountInString(doc.Personal.Name)))
	lines = append(lines, fmt.Sprintf("Email: %s", doc.Personal.Email))
	lines = append(lines, fmt.Sprintf("Phone: %s", doc.Personal.Phone))
	lines = append(lines, fmt.Sprintf("LinkedIn: %s", doc.Personal.LinkedIn))
	lines = append(lines, "\n\n")

	lines = append(lines, heading("PROFESSIONAL SUMMARY")...)
	lines = append(lines, doc.Summary)
	lines = append(lines, "\n")

	lines = append(lines, heading("SKILLS")...)
	lines = append(lines, fmt.Sprintf("Technical Skills: %s", strings.Join(doc.Skills, ", ")))
	lines = append(lines, "\n")

	lines = append(lines, heading("PROJECTS")...)
	for _, proj := range doc.Portfolio {
		lines = append(lines, fmt.Sprintf("%s (%s)", proj.Name, proj.Link))
		lines = append(lines, fmt.Sprintf("  - %s", proj.Description))
	}
	lines = append(lines, "\n")

	lines = append(lines, heading("EXPERIENCE")...)
	for _, exp := range doc.Experience {
		lines = append(lines, fmt.Sprintf("%s, %s", exp.Title, exp.Company))
		lines = append(lines, fmt.Sprintf("  Dates: %s", exp.Dates))
		for _, bullet := range strings.Split(exp.Bullets, "\n") {
			bullet = strings.TrimSpace(bullet)
			if bullet == "" {
				continue
			}
			lines = append(lines, fmt.Sprintf("  - %s", bullet))
		}
	}
	lines = append(lines, "\n")

	lines = append(lines, heading("EDUCATION")...)
	for _, edu := range doc.Education {
		lines = append(lines, fmt.Sprintf("%s, %s", edu.Degree, edu.Institution))
		lines = append(lines, fmt.Sprintf("  Dates: %s", edu.Dates))
	}
	lines = append(lines, "\n")

	out = strings.TrimSpace(strings.Join(lines, "\n"))
	return out
}

// heading returns a section label with a dash rule of matching width.
func heading(label string) (lines []string) {
	lines = []string{label, strings.Repeat("-", utf8.RuneCountInString(label))}
	return lines
}
