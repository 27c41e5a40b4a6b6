package listings

import (
	"errors"
	"strconv"
	"time"

	"go_listar/api/v1/middleware"
	"go_listar/internal/httpx"
	"go_listar/internal/listing"

	"github.com/gin-gonic/gin"
)

// Admin moderation endpoints. AdminRequired gates these routes before
// any handler runs.

// Pending returns the moderation queue, oldest submission first
func (h *Handler) Pending(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	records, total, err := h.svc.Pending(page, perPage)
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to query pending listings", err))
		return
	}

	items := make([]ModerationItem, 0, len(records))
	for i := range records {
		l := &records[i]
		items = append(items, ModerationItem{
			ID:        l.ID,
			PostTitle: l.Title,
			PostDate:  l.CreatedAt.Format(time.RFC3339),
			Status:    string(l.Status),
			Author:    toAuthor(l.User),
		})
	}

	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = h.svc.PerPage()
	}
	httpx.OKItems(c, items, page, perPage, total)
}

// UpdateStatusRequest is the moderation action body
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus applies an admin approve/reject/draft action. Unknown
// status values are a validation failure here, unlike the save path.
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid listing id"))
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamMissing("status is required"))
		return
	}

	caller := middleware.Caller(c)

	updated, decision, err := h.svc.Moderate(caller.ID, id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, listing.ErrNotFound):
			httpx.FailErr(c, httpx.ErrNotFound("listing not found"))
		case errors.Is(err, listing.ErrInvalidStatus):
			httpx.FailErr(c, httpx.ErrParamInvalid("invalid status"))
		case errors.Is(err, listing.ErrConflict):
			httpx.FailErr(c, httpx.ErrStateConflict("listing was modified concurrently, retry"))
		default:
			httpx.FailErr(c, httpx.ErrDatabaseError("failed to update status", err))
		}
		return
	}

	httpx.OKMsg(c, decision.Message, SaveResult{
		ID:             updated.ID,
		Status:         string(updated.Status),
		RequiresReview: decision.RequiresReview,
	})
}

// AdminDelete removes any listing, bypassing the ownership check
func (h *Handler) AdminDelete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid listing id"))
		return
	}

	caller := middleware.Caller(c)

	if err := h.svc.Delete(caller, id); err != nil {
		if errors.Is(err, listing.ErrNotFound) {
			httpx.FailErr(c, httpx.ErrNotFound("listing not found"))
			return
		}
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to delete listing", err))
		return
	}

	httpx.OKMsg(c, "Listing deleted successfully", nil)
}
