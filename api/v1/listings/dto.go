package listings

import (
	"time"

	"go_listar/internal/listing"
	"go_listar/internal/model"

	"gorm.io/datatypes"
)

// Legacy wire names (ID, post_title, post_status...) are kept for the
// mobile client, which predates this backend.

// AuthorDTO is the embedded listing author
type AuthorDTO struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	UserPhoto string `json:"user_photo"`
}

// CategoryDTO is the embedded primary category term
type CategoryDTO struct {
	TermID int    `json:"term_id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Icon   string `json:"icon"`
	Color  string `json:"color"`
}

// ListItem is one row of a collection response
type ListItem struct {
	ID                  int          `json:"ID"`
	PostTitle           string       `json:"post_title"`
	PostExcerpt         string       `json:"post_excerpt"`
	PostDate            string       `json:"post_date"`
	PostStatus          string       `json:"post_status"`
	Category            *CategoryDTO `json:"category"`
	Author              *AuthorDTO   `json:"author,omitempty"`
	RatingAvg           float64      `json:"rating_avg"`
	RatingCount         int          `json:"rating_count"`
	Address             string       `json:"address"`
	Phone               string       `json:"phone"`
	PriceMin            float64      `json:"price_min"`
	PriceMax            float64      `json:"price_max"`
	BookingUse          bool         `json:"booking_use"`
	BookingPriceDisplay string       `json:"booking_price_display"`
	Wishlist            bool         `json:"wishlist"`
	Latitude            *float64     `json:"latitude"`
	Longitude           *float64     `json:"longitude"`
}

// Detail is the single-listing response
type Detail struct {
	ListItem
	Content        string         `json:"content"`
	GUID           string         `json:"guid"`
	PreviousStatus string         `json:"previous_status,omitempty"`
	ZipCode        string         `json:"zip_code"`
	Fax            string         `json:"fax"`
	Email          string         `json:"email"`
	Website        string         `json:"website"`
	VideoURL       string         `json:"video_url"`
	DateEstablish  *time.Time     `json:"date_establish"`
	Color          string         `json:"color"`
	Icon           string         `json:"icon"`
	BookingStyle   string         `json:"booking_style"`
	OpeningHour    datatypes.JSON `json:"opening_hour"`
	SocialNetwork  datatypes.JSON `json:"social_network"`
	ViewCount      int            `json:"view_count"`
	Related        []RelatedItem  `json:"related"`
	Latest         []RelatedItem  `json:"lastest"` // legacy typo kept for the client
}

// RelatedItem is a compact row in the related/latest blocks
type RelatedItem struct {
	ID        int     `json:"ID"`
	PostTitle string  `json:"post_title"`
	RatingAvg float64 `json:"rating_avg"`
}

// SaveResult is the save endpoint payload
type SaveResult struct {
	ID             int    `json:"id"`
	Status         string `json:"status"`
	RequiresReview bool   `json:"requires_review"`
}

// ModerationItem is one row of the pending queue
type ModerationItem struct {
	ID        int        `json:"ID"`
	PostTitle string     `json:"post_title"`
	PostDate  string     `json:"post_date"`
	Status    string     `json:"status"`
	Author    *AuthorDTO `json:"author,omitempty"`
}

func toAuthor(u *model.User) *AuthorDTO {
	if u == nil {
		return nil
	}
	return &AuthorDTO{
		ID:        u.ID,
		Name:      u.Name(),
		UserPhoto: u.Image,
	}
}

func primaryCategory(l *model.Listing) *CategoryDTO {
	for _, lc := range l.Categories {
		if lc.Type == model.TermCategory && lc.Category != nil {
			return &CategoryDTO{
				TermID: lc.Category.ID,
				Name:   lc.Category.Name,
				Slug:   lc.Category.Slug,
				Icon:   lc.Category.Icon,
				Color:  lc.Category.Color,
			}
		}
	}
	return nil
}

func toListItem(l *model.Listing, wishlisted bool) ListItem {
	return ListItem{
		ID:                  l.ID,
		PostTitle:           l.Title,
		PostExcerpt:         l.Excerpt,
		PostDate:            l.CreatedAt.Format(time.RFC3339),
		PostStatus:          string(l.Status),
		Category:            primaryCategory(l),
		Author:              toAuthor(l.User),
		RatingAvg:           l.RatingAvg,
		RatingCount:         l.RatingCount,
		Address:             l.Address,
		Phone:               l.Phone,
		PriceMin:            l.PriceMin,
		PriceMax:            l.PriceMax,
		BookingUse:          l.BookingUse,
		BookingPriceDisplay: l.BookingPrice,
		Wishlist:            wishlisted,
		Latitude:            l.Latitude,
		Longitude:           l.Longitude,
	}
}

func toRelated(records []model.Listing) []RelatedItem {
	items := make([]RelatedItem, 0, len(records))
	for _, r := range records {
		items = append(items, RelatedItem{
			ID:        r.ID,
			PostTitle: r.Title,
			RatingAvg: r.RatingAvg,
		})
	}
	return items
}

func toDetail(d *listing.Detail) Detail {
	l := d.Listing
	prev := ""
	if l.PreviousStatus != nil {
		prev = string(*l.PreviousStatus)
	}
	return Detail{
		ListItem:       toListItem(l, d.Wishlisted),
		Content:        l.Content,
		GUID:           l.Slug,
		PreviousStatus: prev,
		ZipCode:        l.ZipCode,
		Fax:            l.Fax,
		Email:          l.Email,
		Website:        l.Website,
		VideoURL:       l.VideoURL,
		DateEstablish:  l.DateEstablish,
		Color:          l.Color,
		Icon:           l.Icon,
		BookingStyle:   l.BookingStyle,
		OpeningHour:    l.OpeningHours,
		SocialNetwork:  l.SocialNetwork,
		ViewCount:      l.ViewCount,
		Related:        toRelated(d.Related),
		Latest:         toRelated(d.Latest),
	}
}
