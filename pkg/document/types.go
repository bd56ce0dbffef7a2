package document

// Personal holds the contact block rendered at the top of every projection.
type Personal struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LinkedIn string `json:"linkedin"`
}

// EducationEntry represents one education item.
type EducationEntry struct {
	ID          int64  `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Dates       string `json:"dates"`
}

// ExperienceEntry represents one experience item. Bullets holds the raw
// achievement text, one point per line.
type ExperienceEntry struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Company string `json:"company"`
	Dates   string `json:"dates"`
	Bullets string `json:"bullets"`
}

// PortfolioEntry represents one portfolio project.
type PortfolioEntry struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Link        string `json:"link"`
	Description string `json:"description"`
}

// CoverLetter holds the cover-letter targeting inputs and the generated draft.
type CoverLetter struct {
	Company string `json:"company"`
	Title   string `json:"title"`
	Draft   string `json:"draft"`
}

// Document is the complete editable state behind one building session.
// Projections always render its sections in a fixed order: summary, skills,
// portfolio, experience, education.
type Document struct {
	Personal    Personal          `json:"personal"`
	Summary     string            `json:"summary"`
	Education   []EducationEntry  `json:"education"`
	Experience  []ExperienceEntry `json:"experience"`
	Skills      []string          `json:"skills"`
	Portfolio   []PortfolioEntry  `json:"portfolio"`
	CoverLetter CoverLetter       `json:"cover_letter"`

	lastID int64
}
