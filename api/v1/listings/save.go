package listings

import (
	"errors"

	"go_listar/api/v1/middleware"
	"go_listar/internal/httpx"
	"go_listar/internal/listing"

	"github.com/gin-gonic/gin"
)

// SaveRequest carries the legacy save endpoint body. post_status is a
// request, not a command: the moderation rules decide what sticks.
type SaveRequest struct {
	PostID        int      `json:"post_id"`
	Title         string   `json:"title" binding:"required"`
	Content       string   `json:"content"`
	Status        string   `json:"status"`
	Country       int      `json:"country"`
	State         int      `json:"state"`
	City          int      `json:"city"`
	Address       string   `json:"address"`
	ZipCode       string   `json:"zip_code"`
	Phone         string   `json:"phone"`
	Fax           string   `json:"fax"`
	Email         string   `json:"email"`
	Website       string   `json:"website"`
	Color         string   `json:"color"`
	Icon          string   `json:"icon"`
	Thumbnail     string   `json:"thumbnail"`
	VideoURL      string   `json:"video_url"`
	DateEstablish string   `json:"date_establish"`
	PriceMin      float64  `json:"price_min"`
	PriceMax      float64  `json:"price_max"`
	BookingUse    bool     `json:"booking_use"`
	BookingStyle  string   `json:"booking_style"`
	BookingPrice  string   `json:"booking_price"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	OpeningHour   jsonRaw  `json:"opening_hour"`
	SocialNetwork jsonRaw  `json:"social_network"`
	CategoryID    int      `json:"category_id"`
}

// Save creates or updates a listing through the moderation state machine
func (h *Handler) Save(c *gin.Context) {
	var req SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid request body"))
		return
	}

	caller := middleware.Caller(c)

	in := listing.SaveInput{
		ID:            req.PostID,
		Title:         req.Title,
		Content:       req.Content,
		Status:        req.Status,
		Address:       req.Address,
		ZipCode:       req.ZipCode,
		Phone:         req.Phone,
		Fax:           req.Fax,
		Email:         req.Email,
		Website:       req.Website,
		Color:         req.Color,
		Icon:          req.Icon,
		Thumbnail:     req.Thumbnail,
		VideoURL:      req.VideoURL,
		DateEstablish: parseDate(req.DateEstablish),
		CountryID:     req.Country,
		StateID:       req.State,
		CityID:        req.City,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		PriceMin:      req.PriceMin,
		PriceMax:      req.PriceMax,
		BookingUse:    req.BookingUse,
		BookingStyle:  req.BookingStyle,
		BookingPrice:  req.BookingPrice,
		OpeningHours:  req.OpeningHour.JSON(),
		SocialNetwork: req.SocialNetwork.JSON(),
		CategoryID:    req.CategoryID,
	}

	saved, decision, err := h.svc.Save(caller, in)
	if err != nil {
		switch {
		case errors.Is(err, listing.ErrNotFound):
			httpx.FailErr(c, httpx.ErrNotFound("listing not found"))
		case errors.Is(err, listing.ErrForbidden):
			httpx.FailErr(c, httpx.ErrForbidden("not authorized to edit this listing"))
		case errors.Is(err, listing.ErrConflict):
			httpx.FailErr(c, httpx.ErrStateConflict("listing was modified concurrently, retry"))
		default:
			httpx.FailErr(c, httpx.ErrDatabaseError("failed to save listing", err))
		}
		return
	}

	httpx.OKMsg(c, decision.Message, SaveResult{
		ID:             saved.ID,
		Status:         string(saved.Status),
		RequiresReview: decision.RequiresReview,
	})
}
