package moderation

import (
	"testing"

	"go_listar/internal/model"
)

func TestOnCreate(t *testing.T) {
	tests := []struct {
		name       string
		isAdmin    bool
		requested  string
		wantStatus model.ListingStatus
		wantReview bool
	}{
		{"owner no status", false, "", model.StatusPending, true},
		{"owner requests publish", false, "publish", model.StatusPending, true},
		{"owner requests pending", false, "pending", model.StatusPending, true},
		{"owner requests draft", false, "draft", model.StatusDraft, false},
		{"owner unknown status clamps to pending", false, "live", model.StatusPending, true},
		{"admin no status", true, "", model.StatusPending, true},
		{"admin requests publish", true, "publish", model.StatusPublish, false},
		{"admin requests draft", true, "draft", model.StatusDraft, false},
		{"admin unknown status clamps to pending", true, "bogus", model.StatusPending, true},
		{"case-insensitive", false, "Draft", model.StatusDraft, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := OnCreate(tt.isAdmin, tt.requested)
			if d.Status != tt.wantStatus {
				t.Errorf("Status = %s, want %s", d.Status, tt.wantStatus)
			}
			if d.RequiresReview != tt.wantReview {
				t.Errorf("RequiresReview = %v, want %v", d.RequiresReview, tt.wantReview)
			}
			if d.Changed {
				t.Error("Changed should be false on create")
			}
			if d.PreviousStatus != "" {
				t.Errorf("PreviousStatus should be empty on create, got %s", d.PreviousStatus)
			}
		})
	}
}

func TestOnUpdate_ReviewGate(t *testing.T) {
	// Owner editing a published listing always reverts to pending,
	// whatever was requested.
	for _, requested := range []string{"", "publish", "pending", "draft", "bogus"} {
		d := OnUpdate(false, model.StatusPublish, requested)
		if d.Status != model.StatusPending {
			t.Errorf("requested %q: Status = %s, want pending", requested, d.Status)
		}
		if !d.Changed {
			t.Errorf("requested %q: expected Changed", requested)
		}
		if d.PreviousStatus != model.StatusPublish {
			t.Errorf("requested %q: PreviousStatus = %s, want publish", requested, d.PreviousStatus)
		}
		if !d.RequiresReview {
			t.Errorf("requested %q: expected RequiresReview", requested)
		}
	}
}

func TestOnUpdate_Owner(t *testing.T) {
	tests := []struct {
		name        string
		current     model.ListingStatus
		requested   string
		wantStatus  model.ListingStatus
		wantChanged bool
	}{
		{"pending stays pending", model.StatusPending, "", model.StatusPending, false},
		{"pending to draft", model.StatusPending, "draft", model.StatusDraft, true},
		{"pending requests publish clamps", model.StatusPending, "publish", model.StatusPending, false},
		{"draft resubmits", model.StatusDraft, "", model.StatusPending, true},
		{"draft stays draft", model.StatusDraft, "draft", model.StatusDraft, false},
		{"draft requests publish clamps", model.StatusDraft, "publish", model.StatusPending, true},
		{"unknown status clamps", model.StatusDraft, "live", model.StatusPending, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := OnUpdate(false, tt.current, tt.requested)
			if d.Status != tt.wantStatus {
				t.Errorf("Status = %s, want %s", d.Status, tt.wantStatus)
			}
			if d.Changed != tt.wantChanged {
				t.Errorf("Changed = %v, want %v", d.Changed, tt.wantChanged)
			}
			if tt.wantChanged && d.PreviousStatus != tt.current {
				t.Errorf("PreviousStatus = %s, want %s", d.PreviousStatus, tt.current)
			}
			if !tt.wantChanged && d.PreviousStatus != "" {
				t.Errorf("PreviousStatus should be empty when unchanged, got %s", d.PreviousStatus)
			}
		})
	}
}

func TestOnUpdate_Admin(t *testing.T) {
	// Admin assigns freely; omitted or unknown status keeps the stored value.
	d := OnUpdate(true, model.StatusPending, "publish")
	if d.Status != model.StatusPublish || !d.Changed || d.PreviousStatus != model.StatusPending {
		t.Errorf("admin publish: got %+v", d)
	}

	d = OnUpdate(true, model.StatusPublish, "")
	if d.Status != model.StatusPublish || d.Changed {
		t.Errorf("admin omitted status: got %+v", d)
	}

	d = OnUpdate(true, model.StatusPublish, "bogus")
	if d.Status != model.StatusPublish || d.Changed {
		t.Errorf("admin unknown status: got %+v", d)
	}

	d = OnUpdate(true, model.StatusPublish, "draft")
	if d.Status != model.StatusDraft || !d.Changed || d.PreviousStatus != model.StatusPublish {
		t.Errorf("admin draft: got %+v", d)
	}
}

func TestOnModerate(t *testing.T) {
	d, err := OnModerate(model.StatusPending, "publish")
	if err != nil {
		t.Fatalf("OnModerate() failed: %v", err)
	}
	if d.Status != model.StatusPublish || !d.Changed || d.PreviousStatus != model.StatusPending {
		t.Errorf("got %+v", d)
	}
	if d.RequiresReview {
		t.Error("publish should not require review")
	}

	// Rejecting back to pending
	d, err = OnModerate(model.StatusPublish, "pending")
	if err != nil {
		t.Fatalf("OnModerate() failed: %v", err)
	}
	if d.Status != model.StatusPending || !d.RequiresReview {
		t.Errorf("got %+v", d)
	}

	// Unknown status is a validation failure on the moderation path
	if _, err := OnModerate(model.StatusPending, "approved"); err == nil {
		t.Error("OnModerate() should fail for unknown status")
	}
	if _, err := OnModerate(model.StatusPending, ""); err == nil {
		t.Error("OnModerate() should fail for empty status")
	}
}

func TestOnModerate_Idempotent(t *testing.T) {
	// Re-approving an already published listing records no change.
	d, err := OnModerate(model.StatusPublish, "publish")
	if err != nil {
		t.Fatalf("OnModerate() failed: %v", err)
	}
	if d.Changed {
		t.Error("re-approving publish should not record a change")
	}
	if d.PreviousStatus != "" {
		t.Errorf("PreviousStatus should stay empty, got %s", d.PreviousStatus)
	}
}
