package wishlist

import (
	"errors"
	"time"

	"go_listar/api/v1/middleware"
	"go_listar/internal/httpx"
	"go_listar/internal/model"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler serves the wishlist endpoints
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a wishlist handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// SaveRequest toggles a listing in the caller's wishlist
type SaveRequest struct {
	PostID int `json:"post_id" binding:"required"`
}

// Save adds the listing to the wishlist, or removes it if present.
// Only published listings can be wishlisted; non-public listings are
// reported as not found so their existence is not confirmed.
func (h *Handler) Save(c *gin.Context) {
	var req SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamMissing("post_id is required"))
		return
	}

	caller := middleware.Caller(c)

	var l model.Listing
	err := h.db.Select("id", "status").First(&l, req.PostID).Error
	if err != nil || l.Status != model.StatusPublish {
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.FailErr(c, httpx.ErrDatabaseError("failed to load listing", err))
			return
		}
		httpx.FailErr(c, httpx.ErrNotFound("listing not found"))
		return
	}

	var existing model.Wishlist
	err = h.db.Where("user_id = ? AND listing_id = ?", caller.ID, req.PostID).First(&existing).Error
	switch {
	case err == nil:
		if err := h.db.Delete(&existing).Error; err != nil {
			httpx.FailErr(c, httpx.ErrDatabaseError("failed to update wishlist", err))
			return
		}
		httpx.OKMsg(c, "Removed from wishlist", gin.H{"wishlist": false})
	case errors.Is(err, gorm.ErrRecordNotFound):
		entry := model.Wishlist{UserID: caller.ID, ListingID: req.PostID}
		if err := h.db.Create(&entry).Error; err != nil {
			httpx.FailErr(c, httpx.ErrDatabaseError("failed to update wishlist", err))
			return
		}
		httpx.OKMsg(c, "Added to wishlist", gin.H{"wishlist": true})
	default:
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to query wishlist", err))
	}
}

// ListItem is one wishlisted listing row
type ListItem struct {
	ID        int     `json:"ID"`
	PostTitle string  `json:"post_title"`
	PostDate  string  `json:"post_date"`
	RatingAvg float64 `json:"rating_avg"`
	Address   string  `json:"address"`
}

// List returns the caller's wishlisted listings, most recently added
// first. Listings that have left publish since being added are omitted.
func (h *Handler) List(c *gin.Context) {
	caller := middleware.Caller(c)

	var entries []model.Wishlist
	err := h.db.
		Preload("Listing").
		Where("user_id = ?", caller.ID).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to query wishlist", err))
		return
	}

	items := make([]ListItem, 0, len(entries))
	for _, e := range entries {
		l := e.Listing
		if l == nil || l.Status != model.StatusPublish {
			continue
		}
		items = append(items, ListItem{
			ID:        l.ID,
			PostTitle: l.Title,
			PostDate:  l.CreatedAt.Format(time.RFC3339),
			RatingAvg: l.RatingAvg,
			Address:   l.Address,
		})
	}

	httpx.OK(c, items)
}
