package listings

import (
	"go_listar/api/v1/middleware"
	"go_listar/internal/httpx"
	"go_listar/internal/listing"

	"github.com/gin-gonic/gin"
)

// Handler serves the listing lifecycle endpoints
type Handler struct {
	svc *listing.Service
}

// NewHandler creates a listings handler
func NewHandler(svc *listing.Service) *Handler {
	return &Handler{svc: svc}
}

// List serves the public collection view. The filter builder decides
// what the caller may see; excluded records are silently omitted.
func (h *Handler) List(c *gin.Context) {
	var params listing.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid query parameters"))
		return
	}

	caller := middleware.Caller(c)

	records, total, err := h.svc.List(caller, params)
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to query listings", err))
		return
	}

	ids := make([]int, 0, len(records))
	for _, l := range records {
		ids = append(ids, l.ID)
	}
	wishlist, err := h.svc.WishlistFlags(caller.ID, ids)
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to query wishlist", err))
		return
	}

	items := make([]ListItem, 0, len(records))
	for i := range records {
		items = append(items, toListItem(&records[i], wishlist[records[i].ID]))
	}

	page, perPage := params.Page, params.PerPage
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = h.svc.PerPage()
	}
	httpx.OKItems(c, items, page, perPage, total)
}
