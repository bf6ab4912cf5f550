package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	projectUC "github.com/gourav132/Show-IT/internal/application/usecase/project"
	"github.com/gourav132/Show-IT/internal/domain/profile"
)

// PublicHandler serves the viewer behind the shareable link. No auth: the
// username in the path is the whole lookup key.
type PublicHandler struct {
	profiles     profile.Repository
	listProjects *projectUC.ListProjectsUseCase
}

func NewPublicHandler(profiles profile.Repository, listUC *projectUC.ListProjectsUseCase) *PublicHandler {
	return &PublicHandler{profiles: profiles, listProjects: listUC}
}

func (h *PublicHandler) GetPortfolio(c *gin.Context) {
	username := c.Param("username")

	p, err := h.profiles.GetByUsername(c.Request.Context(), username)
	if err != nil {
		c.Error(err)
		return
	}

	projects, err := h.listProjects.Execute(c.Request.Context(), p.OwnerID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, PortfolioDTO{
		Profile:  ToProfileDTO(*p),
		Projects: ToProjectDTOs(projects),
	})
}
