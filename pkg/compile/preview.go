package compile

import (
	"fmt"
	"strings"

	"instafolio/pkg/document"
)

// Preview compiles the document into a themed HTML resume preview fragment:
// a centered header followed by one bordered block per section, in the same
// fixed order as the plain-text projection.
func Preview(doc *document.Document, theme Theme) (out string) {
	p := theme.Palette()

	blocks := []string{
		previewHeader(doc, p),
		previewSummary(doc, p),
		previewSkills(doc, p),
		previewPortfolio(doc, p),
		previewExperience(doc, p),
		previewEducation(doc, p),
	}
	out = strings.Join(blocks, "\n")
	return out
}

func previewHeader(doc *document.Document, p Palette) (out string) {
	out = fmt.Sprintf(`<div style="text-align: center; border-bottom: 4px solid %s; padding-bottom: 15px; margin-bottom: 20px; background-color: %s; color: %s;">
<h1 style="font-size: 32px; font-weight: 800; margin-bottom: 5px;"><a href="%s" target="_blank" style="color: %s; text-decoration: none;">%s</a></h1>
<p style="font-size: 14px; color: %s;">%s | %s | <a href="%s" target="_blank" style="color: %s; text-decoration: none;">LinkedIn</a></p>
</div>`,
		p.Accent, p.Background, p.Text,
		esc(doc.Personal.LinkedIn), p.Accent, esc(doc.Personal.Name),
		p.SubText, esc(doc.Personal.Email), esc(doc.Personal.Phone),
		esc(doc.Personal.LinkedIn), p.Accent)
	return out
}

// previewSection wraps a section body in the standard bordered block with
// its accented heading.
func previewSection(p Palette, label, body string) (out string) {
	out = fmt.Sprintf(`<div style="margin-bottom: 20px; background-color: %s; color: %s; padding: 10px; border: 1px solid %s;">
<h3 style="border-bottom: 2px solid %s; padding-bottom: 5px; margin-bottom: 10px; color: %s; font-size: 16px;">%s</h3>
%s
</div>`,
		p.Background, p.Text, p.Border, p.Accent, p.Accent, label, body)
	return out
}

func previewSummary(doc *document.Document, p Palette) (out string) {
	body := fmt.Sprintf(`<p style="font-size: 14px; line-height: 1.5; color: %s;">%s</p>`,
		p.Text, esc(doc.Summary))
	out = previewSection(p, "PROFESSIONAL SUMMARY", body)
	return out
}

func previewSkills(doc *document.Document, p Palette) (out string) {
	body := fmt.Sprintf(`<p style="font-size: 14px; color: %s;"><b>Technical Skills:</b> %s</p>`,
		p.Text, esc(strings.Join(doc.Skills, ", ")))
	out = previewSection(p, "SKILLS", body)
	return out
}

func previewPortfolio(doc *document.Document, p Palette) (out string) {
	entries := make([]string, 0, len(doc.Portfolio))
	for _, proj := range doc.Portfolio {
		entries = append(entries, fmt.Sprintf(`<div style="margin-bottom: 10px;">
<a href="%s" target="_blank" style="font-weight: bold; color: %s; text-decoration: none;">%s</a>
<p style="font-size: 12px; color: %s;">%s</p>
<p style="font-size: 14px; color: %s;">%s</p>
</div>`,
			esc(proj.Link), p.Accent, esc(proj.Name),
			p.SubText, esc(proj.Link),
			p.Text, esc(proj.Description)))
	}

	out = previewSection(p, "PROJECTS", strings.Join(entries, "\n"))
	return out
}

func previewExperience(doc *document.Document, p Palette) (out string) {
	entries := make([]string, 0, len(doc.Experience))
	for _, exp := range doc.Experience {
		var items strings.Builder
		for _, bullet := range strings.Split(exp.Bullets, "\n") {
			bullet = strings.TrimSpace(bullet)
			if bullet == "" {
				continue
			}
			fmt.Fprintf(&items, "<li>%s</li>", esc(bullet))
		}

		entries = append(entries, fmt.Sprintf(`<div style="margin-bottom: 15px;">
<div style="display: flex; justify-content: space-between;">
<span style="font-weight: bold; color: %s;">%s</span>
<span style="font-size: 12px; color: %s;">%s</span>
</div>
<p style="font-size: 14px; font-style: italic; color: %s;">%s</p>
<ul style="margin-left: 20px; list-style-type: disc; font-size: 14px; color: %s;">%s</ul>
</div>`,
			p.Text, esc(exp.Title), p.SubText, esc(exp.Dates),
			p.SubText, esc(exp.Company), p.Text, items.String()))
	}

	out = previewSection(p, "EXPERIENCE", strings.Join(entries, "\n"))
	return out
}

func previewEducation(doc *document.Document, p Palette) (out string) {
	entries := make([]string, 0, len(doc.Education))
	for _, edu := range doc.Education {
		entries = append(entries, fmt.Sprintf(`<div style="margin-bottom: 10px;">
<div style="display: flex; justify-content: space-between;">
<span style="font-weight: bold; color: %s;">%s</span>
<span style="font-size: 12px; color: %s;">%s</span>
</div>
<p style="font-size: 14px; font-style: italic; color: %s;">%s</p>
</div>`,
			p.Text, esc(edu.Degree), p.SubText, esc(edu.Dates),
			p.SubText, esc(edu.Institution)))
	}

	out = previewSection(p, "EDUCATION", strings.Join(entries, "\n"))
	return out
}
