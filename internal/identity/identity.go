package identity

import (
	"errors"

	"go_listar/internal/model"

	"gorm.io/gorm"
)

// Caller is the resolved identity a request acts as. ID == 0 means
// anonymous. It is computed once per request and passed by value into
// every authorization decision; nothing re-queries the user mid-request.
type Caller struct {
	ID      int
	IsAdmin bool
}

// Anonymous is the caller for unauthenticated requests
var Anonymous = Caller{}

// Authenticated reports whether the caller carries a user id
func (c Caller) Authenticated() bool {
	return c.ID != 0
}

// Resolver resolves user ids to callers
type Resolver struct {
	db *gorm.DB
}

// NewResolver creates a resolver backed by the given database
func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// Resolve looks up the user and returns the caller context.
// Unknown users resolve to an authenticated, non-admin caller so that
// ownership checks still apply; deactivated users never resolve to admin.
func (r *Resolver) Resolve(userID int) (Caller, error) {
	if userID == 0 {
		return Anonymous, nil
	}

	var user model.User
	if err := r.db.Select("role", "user_level", "active").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Caller{ID: userID}, nil
		}
		return Caller{}, err
	}

	return Caller{ID: userID, IsAdmin: adminFromRecord(user.Role, user.UserLevel, user.Active)}, nil
}

// adminFromRecord applies the dual admin check: the role column or the
// legacy numeric user level. Inactive accounts are never admin.
func adminFromRecord(role string, userLevel int, active bool) bool {
	if !active {
		return false
	}
	return role == model.RoleAdmin || userLevel >= model.AdminUserLevel
}
