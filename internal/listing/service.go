package listing

import (
	"context"
	"database/sql"
	"errors"
	"time"
	"unicode/utf8"

	"go_listar/internal/identity"
	"go_listar/internal/model"
	"go_listar/internal/moderation"
	"go_listar/internal/slug"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultPerPage matches the legacy API default page size
const DefaultPerPage = 10

const enrichmentLimit = 5

// ViewCounter records listing views. Implemented by viewsync; nil means
// view counting is disabled.
type ViewCounter interface {
	Bump(ctx context.Context, listingID int)
}

// Service orchestrates the listing lifecycle: authorized reads, saves
// through the moderation state machine, deletes and admin moderation.
type Service struct {
	db      *gorm.DB
	views   ViewCounter
	perPage int
}

// NewService creates a listing service. perPage is the configured
// default page size; zero falls back to DefaultPerPage.
func NewService(db *gorm.DB, views ViewCounter, perPage int) *Service {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return &Service{db: db, views: views, perPage: perPage}
}

// PerPage returns the effective default page size
func (s *Service) PerPage() int {
	return s.perPage
}

func (s *Service) normalizePage(page, perPage int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = s.perPage
	}
	return page, perPage
}

// List runs an authorized paginated collection read. The total is
// counted against the same filter the rows come from, so total_pages is
// consistent with what the caller can actually retrieve.
func (s *Service) List(caller identity.Caller, p ListParams) ([]model.Listing, int64, error) {
	page, perPage := s.normalizePage(p.Page, p.PerPage)
	q := BuildFilter(caller, p).Apply(s.db)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var listings []model.Listing
	err := q.
		Preload("User").
		Preload("Categories", "type = ?", model.TermCategory).
		Preload("Categories.Category").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&listings).Error
	if err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

// WishlistFlags returns which of the given listing ids the user has
// wishlisted. Separate batch lookup, not part of authorization.
func (s *Service) WishlistFlags(userID int, ids []int) (map[int]bool, error) {
	flags := make(map[int]bool)
	if userID == 0 || len(ids) == 0 {
		return flags, nil
	}

	var listingIDs []int
	err := s.db.Model(&model.Wishlist{}).
		Where("user_id = ? AND listing_id IN ?", userID, ids).
		Pluck("listing_id", &listingIDs).Error
	if err != nil {
		return nil, err
	}
	for _, id := range listingIDs {
		flags[id] = true
	}
	return flags, nil
}

// Detail is a single listing plus its read enrichments
type Detail struct {
	Listing    *model.Listing
	Related    []model.Listing
	Latest     []model.Listing
	Wishlisted bool
}

// Get fetches a single listing for the caller. Missing listings are
// ErrNotFound; visible existence with no rights is ErrForbidden. A
// successful read bumps the view counter and attaches related and
// latest-from-author listings, both restricted to published records
// regardless of the requested listing's own status.
func (s *Service) Get(ctx context.Context, caller identity.Caller, id int) (*Detail, error) {
	var l model.Listing
	err := s.db.
		Preload("User").
		Preload("Categories").
		Preload("Categories.Category").
		First(&l, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !CanView(caller, &l) {
		return nil, ErrForbidden
	}

	if s.views != nil {
		s.views.Bump(ctx, l.ID)
	}

	d := &Detail{Listing: &l}

	var categoryIDs []int
	for _, lc := range l.Categories {
		if lc.Type == model.TermCategory {
			categoryIDs = append(categoryIDs, lc.CategoryID)
		}
	}
	if len(categoryIDs) > 0 {
		err = s.db.Model(&model.Listing{}).
			Where("status = ? AND id <> ?", model.StatusPublish, l.ID).
			Where("id IN (?)", s.db.Session(&gorm.Session{NewDB: true}).
				Model(&model.ListingCategory{}).
				Select("listing_id").
				Where("category_id IN ?", categoryIDs)).
			Limit(enrichmentLimit).
			Find(&d.Related).Error
		if err != nil {
			return nil, err
		}
	}

	err = s.db.Model(&model.Listing{}).
		Where("user_id = ? AND status = ? AND id <> ?", l.UserID, model.StatusPublish, l.ID).
		Order("created_at DESC").
		Limit(enrichmentLimit).
		Find(&d.Latest).Error
	if err != nil {
		return nil, err
	}

	if caller.Authenticated() {
		flags, err := s.WishlistFlags(caller.ID, []int{l.ID})
		if err != nil {
			return nil, err
		}
		d.Wishlisted = flags[l.ID]
	}

	return d, nil
}

// SaveInput carries the writable listing fields of the save endpoint
type SaveInput struct {
	ID            int // 0 = create
	Title         string
	Content       string
	Status        string // raw; the state machine decides what sticks
	Address       string
	ZipCode       string
	Phone         string
	Fax           string
	Email         string
	Website       string
	Color         string
	Icon          string
	Thumbnail     string
	VideoURL      string
	DateEstablish *time.Time
	CountryID     int
	StateID       int
	CityID        int
	Latitude      *float64
	Longitude     *float64
	PriceMin      float64
	PriceMax      float64
	BookingUse    bool
	BookingStyle  string
	BookingPrice  string
	OpeningHours  datatypes.JSON
	SocialNetwork datatypes.JSON
	CategoryID    int
}

func excerpt(content string) string {
	const max = 200
	if len(content) <= max {
		return content
	}
	// Never cut inside a multi-byte rune; MySQL rejects invalid utf8mb4
	cut := max
	for cut > 0 && !utf8.RuneStart(content[cut]) {
		cut--
	}
	return content[:cut]
}

func nullID(v int) sql.NullInt32 {
	if v == 0 {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(v), Valid: true}
}

// Save creates or updates a listing. The moderation state machine
// computes the resulting status before the write; updates additionally
// require the caller to be the owner or an admin.
func (s *Service) Save(caller identity.Caller, in SaveInput) (*model.Listing, moderation.Decision, error) {
	if in.ID == 0 {
		return s.create(caller, in)
	}
	return s.update(caller, in)
}

func (s *Service) create(caller identity.Caller, in SaveInput) (*model.Listing, moderation.Decision, error) {
	d := moderation.OnCreate(caller.IsAdmin, in.Status)

	l := model.Listing{
		UserID:        caller.ID,
		Title:         in.Title,
		Slug:          slug.Make(in.Title),
		Content:       in.Content,
		Excerpt:       excerpt(in.Content),
		Status:        d.Status,
		Address:       in.Address,
		ZipCode:       in.ZipCode,
		Phone:         in.Phone,
		Fax:           in.Fax,
		Email:         in.Email,
		Website:       in.Website,
		Color:         in.Color,
		Icon:          in.Icon,
		Thumbnail:     in.Thumbnail,
		VideoURL:      in.VideoURL,
		DateEstablish: in.DateEstablish,
		CountryID:     nullID(in.CountryID),
		StateID:       nullID(in.StateID),
		CityID:        nullID(in.CityID),
		Latitude:      in.Latitude,
		Longitude:     in.Longitude,
		PriceMin:      in.PriceMin,
		PriceMax:      in.PriceMax,
		BookingUse:    in.BookingUse,
		BookingStyle:  in.BookingStyle,
		BookingPrice:  in.BookingPrice,
		OpeningHours:  in.OpeningHours,
		SocialNetwork: in.SocialNetwork,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&l).Error; err != nil {
			return err
		}
		if in.CategoryID != 0 {
			link := model.ListingCategory{
				ListingID:  l.ID,
				CategoryID: in.CategoryID,
				Type:       model.TermCategory,
			}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, moderation.Decision{}, err
	}
	return &l, d, nil
}

func (s *Service) update(caller identity.Caller, in SaveInput) (*model.Listing, moderation.Decision, error) {
	var l model.Listing
	if err := s.db.First(&l, in.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, moderation.Decision{}, ErrNotFound
		}
		return nil, moderation.Decision{}, err
	}

	if !caller.IsAdmin && l.UserID != caller.ID {
		return nil, moderation.Decision{}, ErrForbidden
	}

	d := moderation.OnUpdate(caller.IsAdmin, l.Status, in.Status)

	updates := map[string]interface{}{
		"title":          in.Title,
		"content":        in.Content,
		"excerpt":        excerpt(in.Content),
		"address":        in.Address,
		"zip_code":       in.ZipCode,
		"phone":          in.Phone,
		"fax":            in.Fax,
		"email":          in.Email,
		"website":        in.Website,
		"color":          in.Color,
		"icon":           in.Icon,
		"thumbnail":      in.Thumbnail,
		"video_url":      in.VideoURL,
		"date_establish": in.DateEstablish,
		"country_id":     nullID(in.CountryID),
		"state_id":       nullID(in.StateID),
		"city_id":        nullID(in.CityID),
		"latitude":       in.Latitude,
		"longitude":      in.Longitude,
		"price_min":      in.PriceMin,
		"price_max":      in.PriceMax,
		"booking_use":    in.BookingUse,
		"booking_style":  in.BookingStyle,
		"booking_price":  in.BookingPrice,
		"opening_hours":  in.OpeningHours,
		"social_network": in.SocialNetwork,
	}

	q := s.db.Model(&model.Listing{}).Where("id = ?", l.ID)
	if d.Changed {
		// Status and audit fields go in the same atomic write, keyed on
		// the status the decision was computed from so a concurrent
		// transition is never silently overwritten.
		updates["status"] = d.Status
		updates["previous_status"] = d.PreviousStatus
		q = q.Where("status = ?", l.Status)
	}

	res := q.Updates(updates)
	if res.Error != nil {
		return nil, moderation.Decision{}, res.Error
	}
	if d.Changed && res.RowsAffected == 0 {
		return nil, moderation.Decision{}, ErrConflict
	}

	if in.CategoryID != 0 {
		err := s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("listing_id = ? AND type = ?", l.ID, model.TermCategory).
				Delete(&model.ListingCategory{}).Error; err != nil {
				return err
			}
			link := model.ListingCategory{
				ListingID:  l.ID,
				CategoryID: in.CategoryID,
				Type:       model.TermCategory,
			}
			return tx.Create(&link).Error
		})
		if err != nil {
			return nil, moderation.Decision{}, err
		}
	}

	if err := s.db.First(&l, l.ID).Error; err != nil {
		return nil, moderation.Decision{}, err
	}
	return &l, d, nil
}

// Delete removes a listing after the owner-or-admin check. A denied
// request has no side effects.
func (s *Service) Delete(caller identity.Caller, id int) error {
	var l model.Listing
	if err := s.db.First(&l, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !caller.IsAdmin && l.UserID != caller.ID {
		return ErrForbidden
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("listing_id = ?", id).Delete(&model.ListingCategory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("listing_id = ?", id).Delete(&model.Wishlist{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Listing{}, id).Error
	})
}

// Moderate applies an admin moderation action. The admin gate itself is
// enforced upstream; this validates the requested status, records the
// previous one and stamps the moderation audit fields in the same write.
func (s *Service) Moderate(adminID, id int, status string) (*model.Listing, moderation.Decision, error) {
	var l model.Listing
	if err := s.db.First(&l, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, moderation.Decision{}, ErrNotFound
		}
		return nil, moderation.Decision{}, err
	}

	d, err := moderation.OnModerate(l.Status, status)
	if err != nil {
		return nil, moderation.Decision{}, ErrInvalidStatus
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":       d.Status,
		"moderated_at": now,
		"moderated_by": nullID(adminID),
	}
	if d.Changed {
		updates["previous_status"] = d.PreviousStatus
	}

	res := s.db.Model(&model.Listing{}).
		Where("id = ? AND status = ?", l.ID, l.Status).
		Updates(updates)
	if res.Error != nil {
		return nil, moderation.Decision{}, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, moderation.Decision{}, ErrConflict
	}

	if err := s.db.First(&l, l.ID).Error; err != nil {
		return nil, moderation.Decision{}, err
	}
	return &l, d, nil
}

// Pending returns the moderation queue: pending listings ordered oldest
// first, so no submission is starved.
func (s *Service) Pending(page, perPage int) ([]model.Listing, int64, error) {
	page, perPage = s.normalizePage(page, perPage)
	q := s.db.Model(&model.Listing{}).Where("status = ?", model.StatusPending)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var listings []model.Listing
	err := q.
		Preload("User").
		Order("created_at ASC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&listings).Error
	if err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

// Mine returns the caller's own listings across all statuses, plus a
// per-status histogram computed over the same ownership filter.
func (s *Service) Mine(userID, page, perPage int) ([]model.Listing, int64, map[model.ListingStatus]int64, error) {
	page, perPage = s.normalizePage(page, perPage)
	q := s.db.Model(&model.Listing{}).Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, nil, err
	}

	var listings []model.Listing
	err := q.
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&listings).Error
	if err != nil {
		return nil, 0, nil, err
	}

	type statusCount struct {
		Status model.ListingStatus
		Count  int64
	}
	var rows []statusCount
	err = s.db.Model(&model.Listing{}).
		Select("status, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, 0, nil, err
	}

	histogram := map[model.ListingStatus]int64{
		model.StatusDraft:   0,
		model.StatusPending: 0,
		model.StatusPublish: 0,
	}
	for _, r := range rows {
		histogram[r.Status] = r.Count
	}

	return listings, total, histogram, nil
}
