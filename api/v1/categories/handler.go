package categories

import (
	"go_listar/internal/httpx"
	"go_listar/internal/model"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler serves the taxonomy read endpoints backing the submit form
// and the tag autocomplete
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a categories handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// TermDTO is a taxonomy term in the legacy wire shape
type TermDTO struct {
	TermID   int       `json:"term_id"`
	Name     string    `json:"name"`
	Slug     string    `json:"slug,omitempty"`
	Icon     string    `json:"icon,omitempty"`
	Color    string    `json:"color,omitempty"`
	Children []TermDTO `json:"children,omitempty"`
}

func toTerm(c *model.Category, withChildren bool) TermDTO {
	t := TermDTO{
		TermID: c.ID,
		Name:   c.Name,
		Slug:   c.Slug,
		Icon:   c.Icon,
		Color:  c.Color,
	}
	if withChildren {
		for i := range c.Children {
			t.Children = append(t.Children, toTerm(&c.Children[i], false))
		}
	}
	return t
}

// BookingStyle is one of the fixed booking style options
type BookingStyle struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var bookingStyles = []BookingStyle{
	{Value: "standard", Label: "Standard"},
	{Value: "daily", Label: "Daily"},
	{Value: "hourly", Label: "Hourly"},
	{Value: "table", Label: "Table"},
	{Value: "slot", Label: "Slot"},
}

// SubmitSettings serves the listing submit form configuration:
// top-level category tree, features, facilities and booking styles
func (h *Handler) SubmitSettings(c *gin.Context) {
	var roots []model.Category
	err := h.db.
		Preload("Children").
		Where("type = ? AND parent_id IS NULL", model.TermCategory).
		Find(&roots).Error
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to query categories", err))
		return
	}

	var features, facilities []model.Category
	if err := h.db.Where("type = ?", model.TermFeature).Find(&features).Error; err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to query features", err))
		return
	}
	if err := h.db.Where("type = ?", model.TermFacility).Find(&facilities).Error; err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to query facilities", err))
		return
	}

	toTerms := func(cats []model.Category) []TermDTO {
		terms := make([]TermDTO, 0, len(cats))
		for i := range cats {
			terms = append(terms, toTerm(&cats[i], false))
		}
		return terms
	}

	categories := make([]TermDTO, 0, len(roots))
	for i := range roots {
		categories = append(categories, toTerm(&roots[i], true))
	}

	httpx.OK(c, gin.H{
		"categories":     categories,
		"features":       toTerms(features),
		"facilities":     toTerms(facilities),
		"booking_styles": bookingStyles,
	})
}

// Terms serves the tag autocomplete (top 20 matches)
func (h *Handler) Terms(c *gin.Context) {
	q := h.db.Where("type = ?", model.TermTag)
	if search := c.Query("s"); search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}

	var tags []model.Category
	if err := q.Limit(20).Find(&tags).Error; err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to query tags", err))
		return
	}

	terms := make([]TermDTO, 0, len(tags))
	for i := range tags {
		terms = append(terms, TermDTO{TermID: tags[i].ID, Name: tags[i].Name})
	}
	httpx.OK(c, terms)
}
