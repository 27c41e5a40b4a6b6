package model

// Wishlist marks a listing as saved by a user
type Wishlist struct {
	BaseModel
	UserID    int `gorm:"index:idx_user_listing,unique;not null" json:"user_id"`
	ListingID int `gorm:"index:idx_user_listing,unique;not null" json:"listing_id"`

	Listing *Listing `gorm:"foreignKey:ListingID" json:"listing,omitempty"`
}

// TableName specifies the table name for Wishlist model
func (Wishlist) TableName() string {
	return "wishlists"
}
