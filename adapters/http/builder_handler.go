package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gourav132/Show-IT/internal/builder"
	"github.com/gourav132/Show-IT/pkg/apperror"
	"github.com/gourav132/Show-IT/pkg/logger"
)

// BuilderHandler exposes one user's builder session over HTTP. Every route
// resolves the session through the manager, so the first builder request
// after login performs the profile load and starts the project listener.
type BuilderHandler struct {
	manager *builder.Manager
	logger  logger.Logger
}

func NewBuilderHandler(manager *builder.Manager, log logger.Logger) *BuilderHandler {
	return &BuilderHandler{manager: manager, logger: log}
}

func (h *BuilderHandler) session(c *gin.Context) (*builder.Session, bool) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return nil, false
	}
	s, err := h.manager.GetOrCreate(c.Request.Context(), ownerID)
	if err != nil {
		c.Error(err)
		return nil, false
	}
	return s, true
}

func (h *BuilderHandler) State(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ToBuilderStateDTO(s))
}

func (h *BuilderHandler) Next(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	step, errs := s.Wizard.Next()
	if !errs.Ok() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"step": step, "errors": errs})
		return
	}
	c.JSON(http.StatusOK, gin.H{"step": step})
}

func (h *BuilderHandler) Back(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"step": s.Wizard.Back()})
}

type jumpRequest struct {
	Step string `json:"step" binding:"required"`
}

func (h *BuilderHandler) Jump(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req jumpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}
	step, errs, err := s.Wizard.Jump(builder.Step(req.Step))
	if err != nil {
		c.Error(apperror.NewInvalidInput("unknown step", err))
		return
	}
	if !errs.Ok() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"step": step, "errors": errs})
		return
	}
	c.JSON(http.StatusOK, gin.H{"step": step})
}

type fieldUpdateRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

func (h *BuilderHandler) UpdateIntroduction(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req fieldUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}
	msg := s.UpdateIntroduction(req.Field, req.Value)
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

type socialRequest struct {
	Platform string `json:"platform" binding:"required"`
	URL      string `json:"url"`
}

func (h *BuilderHandler) SetSocial(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req socialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}
	msg := s.SetSocial(req.Platform, req.URL)
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

type overviewRequest struct {
	Overview string `json:"overview"`
}

func (h *BuilderHandler) UpdateOverview(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req overviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}
	msg := s.UpdateOverview(req.Overview)
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

type toggleServiceRequest struct {
	Title string `json:"title" binding:"required"`
}

func (h *BuilderHandler) ToggleService(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req toggleServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}
	s.ToggleService(req.Title)
	c.JSON(http.StatusOK, gin.H{"services": s.Store.Snapshot().Services})
}

// Save persists the whole working profile. The builder is save-on-demand:
// nothing reaches the repository until this endpoint is hit.
func (h *BuilderHandler) Save(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := s.Store.Save(c.Request.Context()); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated_at": s.Store.Snapshot().UpdatedAt})
}

// --- Skills ---

func (h *BuilderHandler) SubmitSkill(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var draft builder.SkillDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}
	errs, err := s.Skills.Submit(draft)
	if err != nil {
		c.Error(err)
		return
	}
	if !errs.Ok() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}
	c.JSON(http.StatusOK, gin.H{"skills": s.Store.Snapshot().Skills})
}

func (h *BuilderHandler) BeginEditSkill(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid skill ID", err))
		return
	}
	draft, err := s.Skills.BeginEdit(id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (h *BuilderHandler) DeleteSkill(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := s.Skills.Delete(); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"skills": s.Store.Snapshot().Skills})
}

func (h *BuilderHandler) CancelSkill(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	s.Skills.Cancel()
	c.Status(http.StatusNoContent)
}

// --- Experiences ---

func (h *BuilderHandler) SubmitExperience(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var draft builder.ExperienceDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}
	errs, err := s.Experiences.Submit(draft)
	if err != nil {
		c.Error(err)
		return
	}
	if !errs.Ok() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}
	c.JSON(http.StatusOK, gin.H{"experiences": s.Store.Snapshot().Experiences})
}

func (h *BuilderHandler) BeginEditExperience(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid experience ID", err))
		return
	}
	draft, err := s.Experiences.BeginEdit(id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (h *BuilderHandler) DeleteExperience(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := s.Experiences.Delete(); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"experiences": s.Store.Snapshot().Experiences})
}

func (h *BuilderHandler) CancelExperience(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	s.Experiences.Cancel()
	c.Status(http.StatusNoContent)
}

// --- Projects ---

// SubmitProject takes multipart form data because of the optional cover
// file. The response carries the current mirror, which converges once the
// change notification round-trips; the client must not append locally.
func (h *BuilderHandler) SubmitProject(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	draft := builder.ProjectDraft{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		About:       c.PostForm("about"),
		GithubLink:  c.PostForm("github_link"),
		ProjectLink: c.PostForm("project_link"),
	}

	if fileHeader, err := c.FormFile("file"); err == nil {
		f, err := fileHeader.Open()
		if err != nil {
			c.Error(apperror.NewInvalidInput("cannot read uploaded file", err))
			return
		}
		defer f.Close()
		draft.FileName = fileHeader.Filename
		draft.File = f
	}

	errs, err := s.Projects.Submit(c.Request.Context(), draft)
	if err != nil {
		c.Error(err)
		return
	}
	if !errs.Ok() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": ToProjectDTOs(s.Projects.Projects())})
}

func (h *BuilderHandler) BeginEditProject(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid project ID", err))
		return
	}
	p, err := s.Projects.BeginEdit(id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProjectDTO(p))
}

func (h *BuilderHandler) DeleteProject(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := s.Projects.Delete(c.Request.Context()); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": ToProjectDTOs(s.Projects.Projects())})
}

func (h *BuilderHandler) CancelProject(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	s.Projects.Cancel()
	c.Status(http.StatusNoContent)
}

// CloseSession tears the session down on logout, stopping the project
// listener for the signed-out identity.
func (h *BuilderHandler) CloseSession(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}
	h.manager.Drop(ownerID)
	c.Status(http.StatusNoContent)
}
