package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"instafolio/pkg/compile"
	"instafolio/pkg/document"
	"instafolio/pkg/llm"
	"instafolio/pkg/prompt"
	"instafolio/pkg/server/respond"
	"instafolio/pkg/session"
)

// Handler wires the session routes to the manager.
type Handler struct {
	manager *Manager
}

// NewHandler constructs a Handler.
func NewHandler(manager *Manager) (h *Handler) {
	h = &Handler{manager: manager}
	return h
}

// RegisterRoutes attaches the session routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/sessions", h.create)
	rg.GET("/sessions/:id", h.get)
	rg.DELETE("/sessions/:id", h.delete)

	rg.PUT("/sessions/:id/personal", h.updatePersonal)
	rg.PUT("/sessions/:id/summary", h.updateSummary)
	rg.PUT("/sessions/:id/skills", h.updateSkills)
	rg.PUT("/sessions/:id/cover-letter", h.updateCoverLetter)
	rg.PUT("/sessions/:id/theme", h.updateTheme)

	rg.POST("/sessions/:id/education", h.addEducation)
	rg.PUT("/sessions/:id/education/:entryID", h.updateEducation)
	rg.DELETE("/sessions/:id/education/:entryID", h.deleteEducation)

	rg.POST("/sessions/:id/experience", h.addExperience)
	rg.PUT("/sessions/:id/experience/:entryID", h.updateExperience)
	rg.DELETE("/sessions/:id/experience/:entryID", h.deleteExperience)

	rg.POST("/sessions/:id/portfolio", h.addPortfolio)
	rg.PUT("/sessions/:id/portfolio/:entryID", h.updatePortfolio)
	rg.DELETE("/sessions/:id/portfolio/:entryID", h.deletePortfolio)

	rg.POST("/sessions/:id/generate", h.generate)

	rg.GET("/sessions/:id/resume.txt", h.downloadResume)
	rg.GET("/sessions/:id/preview", h.preview)
	rg.GET("/sessions/:id/portfolio.html", h.downloadSite)
	rg.GET("/sessions/:id/cover-letter.txt", h.downloadCoverLetter)
}

type sessionResponse struct {
	SessionID string             `json:"session_id"`
	Document  *document.Document `json:"document"`
	Status    session.Status     `json:"status"`
	Theme     compile.Theme      `json:"theme"`
}

type entryResponse struct {
	Entry    interface{}        `json:"entry"`
	Document *document.Document `json:"document"`
}

type generateResponse struct {
	Result   string             `json:"result"`
	Document *document.Document `json:"document"`
}

type personalRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LinkedIn string `json:"linkedin"`
}

type summaryRequest struct {
	Summary string `json:"summary"`
}

type skillsRequest struct {
	Skills string `json:"skills"`
}

type coverLetterRequest struct {
	Company string `json:"company"`
	Title   string `json:"title"`
}

type themeRequest struct {
	Theme string `json:"theme"`
}

type educationRequest struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Dates       string `json:"dates"`
}

type experienceRequest struct {
	Title   string `json:"title"`
	Company string `json:"company"`
	Dates   string `json:"dates"`
	Bullets string `json:"bullets"`
}

type portfolioRequest struct {
	Name        string `json:"name"`
	Link        string `json:"link"`
	Description string `json:"description"`
}

type generateRequest struct {
	UseCase string `json:"use_case"`
	EntryID int64  `json:"entry_id"`
}

// state builds the standard session payload. Callers must hold ms.mu.
func state(ms *managedSession) (resp sessionResponse) {
	resp = sessionResponse{
		SessionID: ms.id,
		Document:  ms.doc(),
		Status:    ms.busy,
		Theme:     ms.theme,
	}
	return resp
}

// lookup resolves the session named in the path, responding 404 when it does
// not exist.
func (h *Handler) lookup(c *gin.Context) (ms *managedSession, found bool) {
	ms, found = h.manager.Get(c.Param("id"))
	if !found {
		respond.Error(c, http.StatusNotFound, respond.CodeSessionNotFound, "session not found", nil)
	}
	return ms, found
}

// editable reports whether the document can be written right now, responding
// with a conflict when a generation holds it. Callers must hold ms.mu.
func editable(c *gin.Context, ms *managedSession) (ok bool) {
	if ms.busy.Busy {
		respond.Error(c, http.StatusConflict, respond.CodeGenerationInFlight,
			fmt.Sprintf("%s generation in progress", ms.busy.UseCase), nil)
		return ok
	}
	ok = true
	return ok
}

// entryID parses the entry ID path segment.
func entryID(c *gin.Context) (id int64, ok bool) {
	id, err := strconv.ParseInt(c.Param("entryID"), 10, 64)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeInvalidRequest, "entry id must be an integer", nil)
		return id, ok
	}
	ok = true
	return id, ok
}

func (h *Handler) create(c *gin.Context) {
	ms := h.manager.Create()

	ms.mu.Lock()
	defer ms.mu.Unlock()
	respond.JSON(c, http.StatusCreated, state(ms))
}

func (h *Handler) get(c *gin.Context) {
	ms, found := h.lookup(c)
	if !found {
		return
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	respond.OK(c, state(ms))
}

func (h *Handler) delete(c *gin.Context) {
	if !h.manager.Delete(c.Param("id")) {
		respond.Error(c, http.StatusNotFound, respond.CodeSessionNotFound, "session not found", nil)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) updatePersonal(c *gin.Context) {
	ms, found := h.lookup(c)
	if !found {
		return
	}

	var body personalRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeInvalidRequest, "invalid request body", nil)
		return
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	if !editable(c, ms) {
		return
	}

	ms.sess.Doc.Personal = document.Personal{
		Name:     body.Name,
		Email:    body.Email,
		Phone:    body.Phone,
		LinkedIn: body.LinkedIn,
	}
	respond.OK(c, state(ms))
}

func (h *Handler) updateSummary(c *gin.Context) {
	ms, found := h.lookup(c)
	if !found {
		return
	}

	var body summaryRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeInvalidRequest, "invalid request body", nil)
		return
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	if !editable(c, ms) {
		return
	}

	ms.sess.Doc.Summary = body.Summary
	respond.OK(c, state(ms))
}

// updateSkills replaces the whole skill set from one comma-separated line.
// Suggested skills arrive through the generate flow instead and merge.
func (h *Handler) updateSkills(c *gin.Context) {
	ms, found := h.lookup(c)
	if !found {
		return
	}

	var body skillsRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeInvalidRequest, "invalid request body", nil)
		return
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	if !editable(c, ms) {
		return
	}

	ms.sess.Doc.ReplaceSkills(document.SplitCommaList(body.Skills))
	respond.OK(c, state(ms))
}

func (h *Handler) updateCoverLetter(c *gin.Context) {
	ms, found := h.lookup(c)
	if !found {
		return
	}

	var body coverLetterRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeInvalidRequest, "invalid request body", nil)
		return
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	if !editable(c, ms) {
		return
	}

	ms.sess.Doc.CoverLetter.Company = body.Company
	ms.sess.Doc.CoverLetter.Title = body.Title
	respond.OK(c, state(ms))
}

func (h *Handler) updateTheme(c *gin.Context) {
	ms, found := h.lookup(c)
	if !found {
		return
	}

	var body themeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeInvalidRequest, "invalid request body", nil)
		return
	}

	theme := compile.Theme(strings.ToLower(strings.TrimSpace(body.Theme)))
	if theme != compile.ThemeLight && theme != compile.ThemeDark {
		respond.Error(c, http.StatusUnprocessableEntity, respond.CodeValidationError,
			fmt.Sprintf("unknown theme %q: use light or dark", body.Theme), nil)
		return
	}

	// The theme is HTTP-layer state, not document state, so a running
	// generation does not block it.
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.theme = theme
	respond.OK(c, state(ms))
}

func (h *Handler) addEducation(c *gin.Context) {
	ms, found := h.lookup(c)
	if !found {
		return
	}

	var body educationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeInvalidRequest, "invalid request body", nil)
		return
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	if !editable(c, ms) {
		return
	}

	entry := ms.sess.Doc.AddEducation(body.Institution, body.Degree, body.Dates)
	respond.JSON(c, http.StatusCreated, entryResponse{Entry: entry, Document: ms.sess.Doc})
}

func (h *Handler) updateEducation(c *gin.Context) {
	ms, found := h.lookup(c)
	if !found {
		return
	}

	id, ok := entryID(c)
	if !ok {
		return
	}

	var body educationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeInvalidRequest, "invalid request body", nil)
		return
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	if !editable(c, ms) {
		return
	}

	if !ms.sess.Doc.UpdateEducation(id, body.Institution, body.Degree, body.Dates) {
		respond.Error(c, http.StatusNotFound, respond.CodeEntryNotFound,
			fmt.Sprintf("no education entry with id %d", id), nil)
		return
	}

	entry, _ := ms.sess.Doc.EducationByID(id)
	respond.OK(c, entryResponse{Entry: entry, Document: ms.sess.Doc})
}

func (h *Handler) deleteEducation(c *gin.Context) {
	ms, found := h.lookup(c)
	if !found {
		return
	}

	id, ok := entryID(c)
	if !ok {
		return
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	if !editable(c, ms) {
		return
	}

	if !ms.sess.Doc.RemoveEducation(id) {
		respond.Error(c, http.StatusNotFound, respond.CodeEntryNotFound,
			fmt.Sprintf("no education entry with id %d", id), nil)
		return
	}
	respond.OK(c, state(ms))
}

func (h *Handler) addExperience(c *gin.Context) {
	ms, found := h.lookup(c)
	if !found {
		return
	}

	var body experienceRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeInvalidRequest, "invalid request body", nil)
		return
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	if !editable(c, ms) {
		return
	}

	entry := ms.sess.Doc.AddExperience(body.Title, body.Company, body.Dates, body.Bullets)
	respond.JSON(c, http.StatusCreated, entryResponse{Entry: entry, Document: ms.sess.Doc})
}

func (h *Handler) updateExperience(c *gin.Context) {
	ms, found := h.lookup(c)
	if !found {
		return
	}

	id, ok := entryID(c)
	if !ok {
		return
	}

	var body experienceRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeInvalidRequest, "invalid request body", nil)
		return
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	if !editable(c, ms) {
		return
	}

	if !ms.sess.Doc.UpdateExperience(id, body.Title, body.Company, body.Dates, body.Bullets) {
		respond.Error(c, http.StatusNotFound, respond.CodeEntryNotFound,
			fmt.Sprintf("no experience entry with id %d", id), nil)
		return
	}

	entry, _ := ms.sess.Doc.ExperienceByID(id)
	respond.OK(c, entryResponse{Entry: entry, Document: ms.sess.Doc})
}

func (h *Handler) deleteExperience(c *gin.Context) {
	ms, found := h.lookup(c)
	if !found {
		return
	}

	id, ok := entryID(c)
	if !ok {
		return
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	if !editable(c, ms) {
		return
	}

	if !ms.sess.Doc.RemoveExperience(id) {
		respond.Error(c, http.StatusNotFound, respond.CodeEntryNotFound,
			fmt.Sprintf("no experience entry with id %d", id), nil)
		return
	}
	respond.OK(c, state(ms))
}

func (h *Handler) addPortfolio(c *gin.Context) {
	ms, found := h.lookup(c)
	if !found {
		return
	}

	var body portfolioRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeInvalidRequest, "invalid request body", nil)
		return
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	if !editable(c, ms) {
		return
	}

	entry := ms.sess.Doc.AddPortfolio(body.Name, body.Link, body.Description)
	respond.JSON(c, http.StatusCreated, entryResponse{Entry: entry, Document: ms.sess.Doc})
}

func (h *Handler) updatePortfolio(c *gin.Context) {
	ms, found := h.lookup(c)
	if !found {
		return
	}

	id, ok := entryID(c)
	if !ok {
		return
	}

	var body portfolioRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeInvalidRequest, "invalid request body", nil)
		return
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	if !editable(c, ms) {
		return
	}

	if !ms.sess.Doc.UpdatePortfolio(id, body.Name, body.Link, body.Description) {
		respond.Error(c, http.StatusNotFound, respond.CodeEntryNotFound,
			fmt.Sprintf("no portfolio entry with id %d", id), nil)
		return
	}

	entry, _ := ms.sess.Doc.PortfolioByID(id)
	respond.OK(c, entryResponse{Entry: entry, Document: ms.sess.Doc})
}

func (h *Handler) deletePortfolio(c *gin.Context) {
	ms, found := h.lookup(c)
	if !found {
		return
	}

	id, ok := entryID(c)
	if !ok {
		return
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	if !editable(c, ms) {
		return
	}

	if !ms.sess.Doc.RemovePortfolio(id) {
		respond.Error(c, http.StatusNotFound, respond.CodeEntryNotFound,
			fmt.Sprintf("no portfolio entry with id %d", id), nil)
		return
	}
	respond.OK(c, state(ms))
}

// generate runs one generation flow to completion and returns the merged
// result. The LLM call runs without the session lock so the session stays
// observable; the busy marker keeps every other writer out of the document
// until the flow ends.
func (h *Handler) generate(c *gin.Context) {
	ms, found := h.lookup(c)
	if !found {
		return
	}

	var body generateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeInvalidRequest, "invalid request body", nil)
		return
	}

	useCase := session.UseCase(body.UseCase)
	req, err := session.RequestFor(useCase, body.EntryID)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeInvalidRequest, err.Error(), nil)
		return
	}

	// Claim the document for this generation.
	ms.mu.Lock()
	if ms.busy.Busy {
		inFlight := ms.busy.UseCase
		ms.mu.Unlock()
		respond.Error(c, http.StatusConflict, respond.CodeGenerationInFlight,
			fmt.Sprintf("%s generation in progress", inFlight), nil)
		return
	}
	ms.busy = session.StatusFor(req)
	ms.snapshot = ms.sess.Doc.Clone()
	ms.mu.Unlock()

	genErr := ms.sess.Generate(c.Request.Context(), req)

	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.busy = session.Status{}
	ms.snapshot = nil

	if genErr != nil {
		generationError(c, genErr)
		return
	}

	respond.OK(c, generateResponse{
		Result:   session.ResultFor(ms.sess.Doc, useCase, body.EntryID),
		Document: ms.sess.Doc,
	})
}

func (h *Handler) downloadResume(c *gin.Context) {
	ms, found := h.lookup(c)
	if !found {
		return
	}

	ms.mu.Lock()
	text := compile.Text(ms.doc())
	ms.mu.Unlock()

	c.Header("Content-Disposition", `attachment; filename="resume.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}

func (h *Handler) preview(c *gin.Context) {
	ms, found := h.lookup(c)
	if !found {
		return
	}

	ms.mu.Lock()
	theme := ms.theme
	if raw := c.Query("theme"); raw != "" {
		theme = compile.ParseTheme(raw)
	}
	html := compile.Preview(ms.doc(), theme)
	ms.mu.Unlock()

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (h *Handler) downloadSite(c *gin.Context) {
	ms, found := h.lookup(c)
	if !found {
		return
	}

	ms.mu.Lock()
	page := compile.Site(ms.doc())
	ms.mu.Unlock()

	c.Header("Content-Disposition", `attachment; filename="portfolio.html"`)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

func (h *Handler) downloadCoverLetter(c *gin.Context) {
	ms, found := h.lookup(c)
	if !found {
		return
	}

	ms.mu.Lock()
	draft := ms.doc().CoverLetter.Draft
	ms.mu.Unlock()

	c.Header("Content-Disposition", `attachment; filename="cover_letter.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(draft))
}

// generationError maps pipeline failures onto the error envelope.
func generationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrGenerationInFlight):
		respond.Error(c, http.StatusConflict, respond.CodeGenerationInFlight, err.Error(), nil)
	case prompt.IsValidation(err):
		respond.Error(c, http.StatusUnprocessableEntity, respond.CodeValidationError, err.Error(), nil)
	case errors.Is(err, llm.ErrNotConfigured):
		respond.Error(c, http.StatusServiceUnavailable, respond.CodeNotConfigured, err.Error(), nil)
	default:
		respond.Error(c, http.StatusBadGateway, respond.CodeGenerationFailed, err.Error(), nil)
	}
}
