package listing

import (
	"go_listar/internal/identity"
	"go_listar/internal/model"
)

// CanView decides whether the caller may read a single listing snapshot.
// Published listings are visible to everyone, anonymous included; that
// check runs before any identity check. Everything else is owner or
// admin only.
func CanView(caller identity.Caller, l *model.Listing) bool {
	if l.Status == model.StatusPublish {
		return true
	}
	if !caller.Authenticated() {
		return false
	}
	if caller.IsAdmin {
		return true
	}
	return l.UserID == caller.ID
}
