package listing

import (
	"strings"

	"go_listar/internal/identity"
	"go_listar/internal/model"

	"gorm.io/gorm"
)

// ListParams are the raw collection query parameters (legacy wire names)
type ListParams struct {
	Status     string `form:"post_status"`
	AuthorID   int    `form:"user_id"`
	Search     string `form:"s"`
	CategoryID int    `form:"category_id"`
	LocationID int    `form:"location_id"`
	OrderBy    string `form:"orderby"`
	Order      string `form:"order"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}

// Filter is the authorized, fully resolved collection filter. It is a
// plain value so the authorization branches can be tested without a
// database; Apply translates it to a gorm query.
type Filter struct {
	Status     model.ListingStatus // "" = unconstrained (admin "all")
	OwnerID    int                 // 0 = unconstrained
	Search     string
	CategoryID int
	LocationID int
	OrderBy    string // resolved column, "" = no explicit order
	Order      string // "asc" or "desc"
}

// BuildFilter constructs the authorized read filter for a collection
// query. No combination of parameters can widen the result beyond what
// CanView allows for the caller: requests for another identity's
// non-public listings are silently downgraded to publish, never errored.
func BuildFilter(caller identity.Caller, p ListParams) Filter {
	f := Filter{
		Search:     p.Search,
		CategoryID: p.CategoryID,
		LocationID: p.LocationID,
	}
	f.OrderBy, f.Order = resolveOrder(p.OrderBy, p.Order)

	raw := strings.ToLower(strings.TrimSpace(p.Status))

	switch {
	case raw != "" && raw != "all":
		f.OwnerID = p.AuthorID
		requested, ok := model.ParseListingStatus(raw)
		switch {
		case ok && requested == model.StatusPublish:
			f.Status = model.StatusPublish
		case ok && caller.IsAdmin:
			f.Status = requested
		case ok && caller.Authenticated() && p.AuthorID == caller.ID:
			// A user may browse their own non-public statuses, only theirs.
			f.Status = requested
			f.OwnerID = caller.ID
		default:
			f.Status = model.StatusPublish
		}

	case raw == "all":
		f.OwnerID = p.AuthorID
		if !caller.IsAdmin && !(caller.Authenticated() && p.AuthorID == caller.ID) {
			f.Status = model.StatusPublish
		}

	case p.AuthorID != 0:
		f.OwnerID = p.AuthorID
		if !caller.IsAdmin && caller.ID != p.AuthorID {
			f.Status = model.StatusPublish
		}

	default:
		f.Status = model.StatusPublish
	}

	return f
}

// resolveOrder maps the legacy orderby/order parameters to a column and
// direction. Unrecognized orderby values are ignored, not an error.
func resolveOrder(orderBy, order string) (string, string) {
	dir := "desc"
	if strings.EqualFold(order, "asc") {
		dir = "asc"
	}

	switch strings.ToLower(orderBy) {
	case "", "date":
		return "created_at", dir
	case "title":
		return "title", dir
	case "rating":
		return "rating_avg", dir
	}
	return "", dir
}

// Apply translates the filter to a gorm query. The authorization fields
// (Status, OwnerID) are applied first; search and taxonomy filters only
// ever narrow the set.
func (f Filter) Apply(db *gorm.DB) *gorm.DB {
	q := db.Model(&model.Listing{})

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.OwnerID != 0 {
		q = q.Where("user_id = ?", f.OwnerID)
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where("(title LIKE ? OR content LIKE ?)", pattern, pattern)
	}
	if f.CategoryID != 0 {
		q = q.Where("id IN (?)", db.Session(&gorm.Session{NewDB: true}).
			Model(&model.ListingCategory{}).
			Select("listing_id").
			Where("category_id = ? AND type = ?", f.CategoryID, model.TermCategory))
	}
	if f.LocationID != 0 {
		q = q.Where("(city_id = ? OR state_id = ? OR country_id = ?)",
			f.LocationID, f.LocationID, f.LocationID)
	}
	if f.OrderBy != "" {
		q = q.Order(f.OrderBy + " " + f.Order)
	}

	return q
}
