package listings

import (
	"time"

	"gorm.io/datatypes"
)

// jsonRaw passes a JSON subtree through to the datatypes.JSON column
// without imposing a schema (opening hours and social network blobs are
// client-defined)
type jsonRaw []byte

func (r *jsonRaw) UnmarshalJSON(b []byte) error {
	*r = append((*r)[:0], b...)
	return nil
}

// JSON returns the raw value as a datatypes.JSON, nil for absent/null
func (r jsonRaw) JSON() datatypes.JSON {
	if len(r) == 0 || string(r) == "null" {
		return nil
	}
	return datatypes.JSON(r)
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

// parseDate parses the legacy date_establish field; unparseable values
// are dropped rather than failing the save
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
