package listings

import (
	"errors"

	"go_listar/api/v1/middleware"
	"go_listar/internal/httpx"
	"go_listar/internal/listing"

	"github.com/gin-gonic/gin"
)

// DeleteRequest carries the legacy delete endpoint body
type DeleteRequest struct {
	PostID int `json:"post_id" binding:"required"`
}

// Delete removes the caller's own listing (admins may remove any)
func (h *Handler) Delete(c *gin.Context) {
	var req DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamMissing("post_id is required"))
		return
	}

	caller := middleware.Caller(c)

	if err := h.svc.Delete(caller, req.PostID); err != nil {
		switch {
		case errors.Is(err, listing.ErrNotFound):
			httpx.FailErr(c, httpx.ErrNotFound("listing not found"))
		case errors.Is(err, listing.ErrForbidden):
			httpx.FailErr(c, httpx.ErrForbidden("not authorized to delete this listing"))
		default:
			httpx.FailErr(c, httpx.ErrDatabaseError("failed to delete listing", err))
		}
		return
	}

	httpx.OKMsg(c, "Listing deleted successfully", nil)
}
