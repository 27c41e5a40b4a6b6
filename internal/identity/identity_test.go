package identity

import "testing"

func TestAdminFromRecord(t *testing.T) {
	tests := []struct {
		name      string
		role      string
		userLevel int
		active    bool
		want      bool
	}{
		{"admin role", "admin", 0, true, true},
		{"legacy level", "", 10, true, true},
		{"legacy level above threshold", "", 99, true, true},
		{"both paths", "admin", 10, true, true},
		{"regular user", "", 1, true, false},
		{"empty role never matches", "", 0, true, false},
		{"non-admin role", "editor", 5, true, false},
		{"inactive admin role", "admin", 0, false, false},
		{"inactive legacy level", "", 10, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := adminFromRecord(tt.role, tt.userLevel, tt.active)
			if got != tt.want {
				t.Errorf("adminFromRecord(%q, %d, %v) = %v, want %v",
					tt.role, tt.userLevel, tt.active, got, tt.want)
			}
		})
	}
}

func TestCallerAuthenticated(t *testing.T) {
	if Anonymous.Authenticated() {
		t.Error("Anonymous caller should not be authenticated")
	}

	c := Caller{ID: 7}
	if !c.Authenticated() {
		t.Error("Caller with id should be authenticated")
	}
}
