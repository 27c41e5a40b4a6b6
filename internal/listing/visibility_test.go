package listing

import (
	"testing"

	"go_listar/internal/identity"
	"go_listar/internal/model"
)

func TestCanView_Publish(t *testing.T) {
	l := &model.Listing{UserID: 1, Status: model.StatusPublish}

	callers := []identity.Caller{
		identity.Anonymous,
		{ID: 1},
		{ID: 2},
		{ID: 3, IsAdmin: true},
	}
	for _, c := range callers {
		if !CanView(c, l) {
			t.Errorf("caller %+v should see a published listing", c)
		}
	}
}

func TestCanView_NonPublic(t *testing.T) {
	for _, status := range []model.ListingStatus{model.StatusDraft, model.StatusPending} {
		l := &model.Listing{UserID: 1, Status: status}

		if CanView(identity.Anonymous, l) {
			t.Errorf("anonymous caller should not see %s listing", status)
		}
		if !CanView(identity.Caller{ID: 1}, l) {
			t.Errorf("owner should see own %s listing", status)
		}
		if CanView(identity.Caller{ID: 2}, l) {
			t.Errorf("other user should not see %s listing", status)
		}
		if !CanView(identity.Caller{ID: 3, IsAdmin: true}, l) {
			t.Errorf("admin should see %s listing", status)
		}
	}
}
