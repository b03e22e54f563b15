package tests

import (
	"testing"

	"ridehail/internal/domain"
	"ridehail/internal/service"
)

// ──────────────────────────────────────────────
// 1. ACCESS POLICY
// ──────────────────────────────────────────────

func TestAccessPolicy_CanAccess(t *testing.T) {
	t.Parallel()

	var policy service.AccessPolicy

	testCases := []struct {
		name      string
		requester service.Requester
		ownerID   string
		want      bool
	}{
		{
			name:      "owner can access own profile",
			requester: service.Requester{UserID: "user-1"},
			ownerID:   "user-1",
			want:      true,
		},
		{
			name:      "non-owner cannot access another's profile",
			requester: service.Requester{UserID: "user-1"},
			ownerID:   "user-2",
			want:      false,
		},
		{
			name:      "staff can access any profile",
			requester: service.Requester{UserID: "staff-1", IsStaff: true},
			ownerID:   "user-2",
			want:      true,
		},
		{
			name:      "staff can access own profile",
			requester: service.Requester{UserID: "staff-1", IsStaff: true},
			ownerID:   "staff-1",
			want:      true,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := policy.CanAccess(tc.requester, tc.ownerID); got != tc.want {
				t.Errorf("CanAccess(%v, %q) = %v, want %v", tc.requester, tc.ownerID, got, tc.want)
			}
		})
	}
}

func TestFilterOwned_NonStaffSeesOnlyOwnProfiles(t *testing.T) {
	t.Parallel()

	var policy service.AccessPolicy
	profiles := []*domain.Rider{
		{ID: "rider-1", UserID: "user-1"},
		{ID: "rider-2", UserID: "user-2"},
		{ID: "rider-3", UserID: "user-1"},
	}

	filtered := service.FilterOwned(policy, service.Requester{UserID: "user-1"}, profiles)

	if len(filtered) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(filtered))
	}
	for _, p := range filtered {
		if p.UserID != "user-1" {
			t.Errorf("profile %s owned by %s leaked into filtered set", p.ID, p.UserID)
		}
	}
}

func TestFilterOwned_StaffSeesEveryProfile(t *testing.T) {
	t.Parallel()

	var policy service.AccessPolicy
	profiles := []*domain.Passenger{
		{ID: "passenger-1", UserID: "user-1"},
		{ID: "passenger-2", UserID: "user-2"},
	}

	filtered := service.FilterOwned(policy, service.Requester{UserID: "staff-1", IsStaff: true}, profiles)

	if len(filtered) != len(profiles) {
		t.Fatalf("expected %d profiles, got %d", len(profiles), len(filtered))
	}
}
