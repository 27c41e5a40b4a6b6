package model

import (
	"database/sql"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// ListingStatus represents the moderation status of a listing
type ListingStatus string

const (
	StatusDraft   ListingStatus = "draft"
	StatusPending ListingStatus = "pending"
	StatusPublish ListingStatus = "publish"
)

// ParseListingStatus parses a raw status string (case-insensitive).
// Returns false for anything outside the three persisted values.
func ParseListingStatus(s string) (ListingStatus, bool) {
	switch ListingStatus(strings.ToLower(strings.TrimSpace(s))) {
	case StatusDraft:
		return StatusDraft, true
	case StatusPending:
		return StatusPending, true
	case StatusPublish:
		return StatusPublish, true
	}
	return "", false
}

// Listing represents a directory listing
type Listing struct {
	BaseModel
	UserID         int            `gorm:"index;not null" json:"user_id"`
	Title          string         `gorm:"type:varchar(255);not null" json:"title"`
	Slug           string         `gorm:"type:varchar(255);uniqueIndex" json:"slug"`
	Content        string         `gorm:"type:text" json:"content"`
	Excerpt        string         `gorm:"type:varchar(255)" json:"excerpt"`
	Status         ListingStatus  `gorm:"type:enum('draft','pending','publish');default:'pending';index" json:"status"`
	PreviousStatus *ListingStatus `gorm:"type:enum('draft','pending','publish')" json:"previous_status,omitempty"` // nil until the first status change
	ModeratedAt    *time.Time     `json:"moderated_at,omitempty"`
	ModeratedBy    sql.NullInt32  `json:"-"`
	Address        string         `gorm:"type:varchar(255)" json:"address"`
	ZipCode        string         `gorm:"type:varchar(32)" json:"zip_code"`
	Phone          string         `gorm:"type:varchar(32)" json:"phone"`
	Fax            string         `gorm:"type:varchar(32)" json:"fax"`
	Email          string         `gorm:"type:varchar(255)" json:"email"`
	Website        string         `gorm:"type:varchar(255)" json:"website"`
	Color          string         `gorm:"type:varchar(16)" json:"color"`
	Icon           string         `gorm:"type:varchar(64)" json:"icon"`
	Thumbnail      string         `gorm:"type:varchar(255)" json:"thumbnail"`
	VideoURL       string         `gorm:"type:varchar(255)" json:"video_url"`
	DateEstablish  *time.Time     `json:"date_establish,omitempty"`
	CountryID      sql.NullInt32  `gorm:"index" json:"-"`
	StateID        sql.NullInt32  `gorm:"index" json:"-"`
	CityID         sql.NullInt32  `gorm:"index" json:"-"`
	Latitude       *float64       `json:"latitude,omitempty"`
	Longitude      *float64       `json:"longitude,omitempty"`
	PriceMin       float64        `json:"price_min"`
	PriceMax       float64        `json:"price_max"`
	BookingUse     bool           `json:"booking_use"`
	BookingStyle   string         `gorm:"type:varchar(32)" json:"booking_style"`
	BookingPrice   string         `gorm:"type:varchar(64)" json:"booking_price"`
	OpeningHours   datatypes.JSON `json:"opening_hours,omitempty"`
	SocialNetwork  datatypes.JSON `json:"social_network,omitempty"`
	RatingAvg      float64        `json:"rating_avg"`
	RatingCount    int            `json:"rating_count"`
	ViewCount      int            `json:"view_count"`

	User       *User             `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Categories []ListingCategory `gorm:"foreignKey:ListingID" json:"categories,omitempty"`
}

// TableName specifies the table name for Listing model
func (Listing) TableName() string {
	return "listings"
}
