package listings

import (
	"go_listar/api/v1/middleware"
	"go_listar/internal/httpx"
	"go_listar/internal/listing"
	"go_listar/internal/model"

	"github.com/gin-gonic/gin"
)

// MyListingsResponse is the my-listings payload: the caller's records
// across every status plus a per-status histogram
type MyListingsResponse struct {
	Items      []ListItem       `json:"items"`
	Counts     map[string]int64 `json:"counts"`
	Pagination httpx.Pagination `json:"pagination"`
}

// MyListings returns the caller's own listings, all statuses, with a
// status histogram over the same ownership filter
func (h *Handler) MyListings(c *gin.Context) {
	var params listing.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid query parameters"))
		return
	}

	caller := middleware.Caller(c)

	page, perPage := params.Page, params.PerPage
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = h.svc.PerPage()
	}

	records, total, histogram, err := h.svc.Mine(caller.ID, page, perPage)
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to query listings", err))
		return
	}

	items := make([]ListItem, 0, len(records))
	for i := range records {
		items = append(items, toListItem(&records[i], false))
	}

	counts := make(map[string]int64, len(histogram))
	for status, n := range histogram {
		counts[string(status)] = n
	}
	// All three statuses are always present, zero included
	for _, s := range []model.ListingStatus{model.StatusDraft, model.StatusPending, model.StatusPublish} {
		if _, ok := counts[string(s)]; !ok {
			counts[string(s)] = 0
		}
	}

	httpx.OK(c, MyListingsResponse{
		Items:      items,
		Counts:     counts,
		Pagination: httpx.NewPagination(page, perPage, total),
	})
}
