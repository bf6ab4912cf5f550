package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gourav132/Show-IT/internal/domain/profile"
	"github.com/gourav132/Show-IT/pkg/apperror"
)

type ProfileHandler struct {
	profileRepo profile.Repository
}

func NewProfileHandler(repo profile.Repository) *ProfileHandler {
	return &ProfileHandler{profileRepo: repo}
}

// GetMyProfile returns the stored document, not the builder's working copy.
// Unsaved edits live in the builder session only.
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	p, err := h.profileRepo.GetByOwner(c.Request.Context(), ownerID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProfileDTO(*p))
}
