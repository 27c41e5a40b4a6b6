package listings

import (
	"errors"
	"strconv"

	"go_listar/api/v1/middleware"
	"go_listar/internal/httpx"
	"go_listar/internal/listing"

	"github.com/gin-gonic/gin"
)

// View serves a single listing. Missing records are 404; existing
// records the caller may not read are 403.
func (h *Handler) View(c *gin.Context) {
	id, err := strconv.Atoi(c.Query("id"))
	if err != nil || id <= 0 {
		httpx.FailErr(c, httpx.ErrParamMissing("listing id is required"))
		return
	}

	caller := middleware.Caller(c)

	detail, err := h.svc.Get(c.Request.Context(), caller, id)
	if err != nil {
		switch {
		case errors.Is(err, listing.ErrNotFound):
			httpx.FailErr(c, httpx.ErrNotFound("listing not found"))
		case errors.Is(err, listing.ErrForbidden):
			httpx.FailErr(c, httpx.ErrForbidden("not authorized to view this listing"))
		default:
			httpx.FailErr(c, httpx.ErrDatabaseError("failed to load listing", err))
		}
		return
	}

	httpx.OK(c, toDetail(detail))
}
