package model

import "database/sql"

// Category term types. Locations (country/state/city) are category rows
// too, the same way the legacy schema stored them.
const (
	TermCategory = "category"
	TermFeature  = "feature"
	TermFacility = "facility"
	TermTag      = "tag"
	TermLocation = "location"
)

// Category represents a taxonomy term (category, feature, facility, tag or location)
type Category struct {
	BaseModel
	Name     string        `gorm:"type:varchar(128);not null" json:"name"`
	Slug     string        `gorm:"type:varchar(128);index" json:"slug"`
	Type     string        `gorm:"type:varchar(32);index;default:'category'" json:"type"`
	Icon     string        `gorm:"type:varchar(64)" json:"icon"`
	Color    string        `gorm:"type:varchar(16)" json:"color"`
	ParentID sql.NullInt32 `gorm:"index" json:"-"`

	Children []Category `gorm:"foreignKey:ParentID" json:"children,omitempty"`
}

// TableName specifies the table name for Category model
func (Category) TableName() string {
	return "categories"
}

// ListingCategory links a listing to a taxonomy term
type ListingCategory struct {
	ID         int    `gorm:"primaryKey;autoIncrement" json:"id"`
	ListingID  int    `gorm:"index:idx_listing_term,unique;not null" json:"listing_id"`
	CategoryID int    `gorm:"index:idx_listing_term,unique;not null" json:"category_id"`
	Type       string `gorm:"type:varchar(32);index;default:'category'" json:"type"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// TableName specifies the table name for ListingCategory model
func (ListingCategory) TableName() string {
	return "listing_categories"
}
