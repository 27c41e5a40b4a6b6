package model

// RoleAdmin is the role string that grants admin access.
// Legacy accounts predate the role column and carry UserLevel >= 10 instead;
// both paths must keep working.
const RoleAdmin = "admin"

// AdminUserLevel is the legacy numeric threshold for admin access
const AdminUserLevel = 10

// User represents a user in the system
type User struct {
	BaseModel
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`
	DisplayName  string `gorm:"type:varchar(128)" json:"display_name"`
	FirstName    string `gorm:"type:varchar(64)" json:"first_name"`
	LastName     string `gorm:"type:varchar(64)" json:"last_name"`
	Image        string `gorm:"type:varchar(255)" json:"image"`
	URL          string `gorm:"type:varchar(255)" json:"url"`
	Description  string `gorm:"type:varchar(255)" json:"description"`
	Role         string `gorm:"type:varchar(32);default:''" json:"role"`
	UserLevel    int    `gorm:"default:0" json:"user_level"`
	Active       bool   `gorm:"default:true" json:"active"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// Name returns the display name, falling back to first/last name
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.FirstName + " " + u.LastName
}
