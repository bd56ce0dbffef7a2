// Package document holds the editable resume/portfolio model that generation
// results are merged into and projections are compiled from.
package document

import (
	"strings"
)

// New returns an empty document.
func New() (doc *Document) {
	doc = &Document{
		Education:  []EducationEntry{},
		Experience: []ExperienceEntry{},
		Skills:     []string{},
		Portfolio:  []PortfolioEntry{},
	}
	return doc
}

// Starter returns the seeded document that new sessions begin from.
func Starter() (doc *Document) {
	doc = &Document{
		Personal: Personal{
			Name:     "Student Name",
			Email:    "email@example.com",
			Phone:    "123-456-7890",
			LinkedIn: "linkedin.com/in/student-name",
		},
		Summary: "A highly motivated student seeking a challenging internship in AI and Cloud computing, leveraging strong foundational skills in Python and machine learning to drive impactful project execution.",
		Education: []EducationEntry{
			{
				ID:          1,
				Institution: "University/College Name",
				Degree:      "B.Tech/B.Sc in Computer Science",
				Dates:       "2021 - 2025",
			},
		},
		Experience: []ExperienceEntry{
			{
				ID:      1,
				Title:   "AI and Cloud Intern",
				Company: "Edunet/IBM SkillsBuild",
				Dates:   "June 2024 - Present",
				Bullets: "Successfully completed AI and Cloud internship project.\nGained hands-on experience with cloud services and generative AI tools.\nApplied Python and data analysis techniques to optimize project outcomes.",
			},
		},
		Skills: []string{
			"Python",
			"Cloud Computing (IBM/AWS/Azure)",
			"Generative AI",
			"Data Analysis",
			"Web Development (React/JS)",
		},
		Portfolio: []PortfolioEntry{
			{
				ID:          1,
				Name:        "AI Resume Builder Project",
				Link:        "https://github.com/my-project",
				Description: "Developed an AI tool to generate and optimize resumes and portfolios using Gemini API for content refinement.",
			},
		},
		lastID: 1,
	}
	return doc
}

// Clone returns a deep copy of the document. The copy and the original can
// be edited independently.
func (d *Document) Clone() (clone *Document) {
	clone = &Document{
		Personal:    d.Personal,
		Summary:     d.Summary,
		Education:   make([]EducationEntry, len(d.Education)),
		Experience:  make([]ExperienceEntry, len(d.Experience)),
		Skills:      make([]string, len(d.Skills)),
		Portfolio:   make([]PortfolioEntry, len(d.Portfolio)),
		CoverLetter: d.CoverLetter,
		lastID:      d.lastID,
	}
	copy(clone.Education, d.Education)
	copy(clone.Experience, d.Experience)
	copy(clone.Skills, d.Skills)
	copy(clone.Portfolio, d.Portfolio)
	return clone
}

// takeID mints the next entry ID. The counter never moves backwards, so an
// ID is never reused within a session, even after its entry is removed.
func (d *Document) takeID() (id int64) {
	for _, entry := range d.Education {
		if entry.ID > d.lastID {
			d.lastID = entry.ID
		}
	}
	for _, entry := range d.Experience {
		if entry.ID > d.lastID {
			d.lastID = entry.ID
		}
	}
	for _, entry := range d.Portfolio {
		if entry.ID > d.lastID {
			d.lastID = entry.ID
		}
	}

	d.lastID++
	id = d.lastID
	return id
}

// AddEducation appends a new education entry and returns it.
func (d *Document) AddEducation(institution, degree, dates string) (entry EducationEntry) {
	entry = EducationEntry{
		ID:          d.takeID(),
		Institution: institution,
		Degree:      degree,
		Dates:       dates,
	}
	d.Education = append(d.Education, entry)
	return entry
}

// AddExperience appends a new experience entry and returns it.
func (d *Document) AddExperience(title, company, dates, bullets string) (entry ExperienceEntry) {
	entry = ExperienceEntry{
		ID:      d.takeID(),
		Title:   title,
		Company: company,
		Dates:   dates,
		Bullets: bullets,
	}
	d.Experience = append(d.Experience, entry)
	return entry
}

// AddPortfolio appends a new portfolio entry and returns it.
func (d *Document) AddPortfolio(name, link, description string) (entry PortfolioEntry) {
	entry = PortfolioEntry{
		ID:          d.takeID(),
		Name:        name,
		Link:        link,
		Description: description,
	}
	d.Portfolio = append(d.Portfolio, entry)
	return entry
}

// RemoveEducation deletes the education entry with the given ID, reporting
// whether it existed. The sequence is rebuilt without the removed entry.
func (d *Document) RemoveEducation(id int64) (removed bool) {
	kept := make([]EducationEntry, 0, len(d.Education))
	for _, entry := range d.Education {
		if entry.ID == id {
			removed = true
			continue
		}
		kept = append(kept, entry)
	}
	d.Education = kept
	return removed
}

// RemoveExperience deletes the experience entry with the given ID, reporting
// whether it existed.
func (d *Document) RemoveExperience(id int64) (removed bool) {
	kept := make([]ExperienceEntry, 0, len(d.Experience))
	for _, entry := range d.Experience {
		if entry.ID == id {
			removed = true
			continue
		}
		kept = append(kept, entry)
	}
	d.Experience = kept
	return removed
}

// RemovePortfolio deletes the portfolio entry with the given ID, reporting
// whether it existed.
func (d *Document) RemovePortfolio(id int64) (removed bool) {
	kept := make([]PortfolioEntry, 0, len(d.Portfolio))
	for _, entry := range d.Portfolio {
		if entry.ID == id {
			removed = true
			continue
		}
		kept = append(kept, entry)
	}
	d.Portfolio = kept
	return removed
}

// UpdateEducation replaces the fields of the education entry with the given
// ID, reporting whether it existed.
func (d *Document) UpdateEducation(id int64, institution, degree, dates string) (updated bool) {
	for i := range d.Education {
		if d.Education[i].ID != id {
			continue
		}
		d.Education[i].Institution = institution
		d.Education[i].Degree = degree
		d.Education[i].Dates = dates
		updated = true
		return updated
	}
	return updated
}

// UpdateExperience replaces the fields of the experience entry with the
// given ID, reporting whether it existed.
func (d *Document) UpdateExperience(id int64, title, company, dates, bullets string) (updated bool) {
	for i := range d.Experience {
		if d.Experience[i].ID != id {
			continue
		}
		d.Experience[i].Title = title
		d.Experience[i].Company = company
		d.Experience[i].Dates = dates
		d.Experience[i].Bullets = bullets
		updated = true
		return updated
	}
	return updated
}

// UpdatePortfolio replaces the fields of the portfolio entry with the given
// ID, reporting whether it existed.
func (d *Document) UpdatePortfolio(id int64, name, link, description string) (updated bool) {
	for i := range d.Portfolio {
		if d.Portfolio[i].ID != id {
			continue
		}
		d.Portfolio[i].Name = name
		d.Portfolio[i].Link = link
		d.Portfolio[i].Description = description
		updated = true
		return updated
	}
	return updated
}

// EducationByID returns a copy of the education entry with the given ID.
func (d *Document) EducationByID(id int64) (entry EducationEntry, found bool) {
	for _, e := range d.Education {
		if e.ID == id {
			entry = e
			found = true
			return entry, found
		}
	}
	return entry, found
}

// ExperienceByID returns a copy of the experience entry with the given ID.
func (d *Document) ExperienceByID(id int64) (entry ExperienceEntry, found bool) {
	for _, e := range d.Experience {
		if e.ID == id {
			entry = e
			found = true
			return entry, found
		}
	}
	return entry, found
}

// PortfolioByID returns a copy of the portfolio entry with the given ID.
func (d *Document) PortfolioByID(id int64) (entry PortfolioEntry, found bool) {
	for _, e := range d.Portfolio {
		if e.ID == id {
			entry = e
			found = true
			return entry, found
		}
	}
	return entry, found
}

// SetExperienceBullets replaces the bullets of the experience entry with the
// given ID. An unmatched ID is a no-op.
func (d *Document) SetExperienceBullets(id int64, bullets string) (updated bool) {
	for i := range d.Experience {
		if d.Experience[i].ID == id {
			d.Experience[i].Bullets = bullets
			updated = true
			return updated
		}
	}
	return updated
}

// SetPortfolioDescription replaces the description of the portfolio entry
// with the given ID. An unmatched ID is a no-op.
func (d *Document) SetPortfolioDescription(id int64, description string) (updated bool) {
	for i := range d.Portfolio {
		if d.Portfolio[i].ID == id {
			d.Portfolio[i].Description = description
			updated = true
			return updated
		}
	}
	return updated
}

// ReplaceSkills swaps the skill set for the given items, trimming
// whitespace, dropping empties, and removing duplicates while preserving
// first occurrence.
func (d *Document) ReplaceSkills(items []string) {
	d.Skills = normalizeSkills(items)
}

// MergeSkills unions the given items into the skill set. Existing skills
// keep their positions; unseen items append in the order given. Returns the
// number of skills added.
func (d *Document) MergeSkills(items []string) (added int) {
	seen := make(map[string]struct{}, len(d.Skills))
	for _, skill := range d.Skills {
		seen[skill] = struct{}{}
	}

	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		d.Skills = append(d.Skills, item)
		added++
	}
	return added
}

// SplitCommaList breaks a comma-separated line into trimmed, non-empty
// items. Both the skill editor input and the skill-suggestion responses go
// through this one rule.
func SplitCommaList(raw string) (items []string) {
	parts := strings.Split(raw, ",")
	items = make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		items = append(items, part)
	}
	return items
}

func normalizeSkills(items []string) (skills []string) {
	skills = make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		skills = append(skills, item)
	}
	return skills
}
