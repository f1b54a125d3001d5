package database

import "testing"

func TestPendingStatusValid(t *testing.T) {
	cases := []struct {
		status PendingStatus
		want   bool
	}{
		{StatusPendingReview, true},
		{StatusPendingApproval, true},
		{StatusApproved, true},
		{StatusRejected, true},
		{PendingStatus(""), false},
		{PendingStatus("published"), false},
		{PendingStatus("PENDING_REVIEW"), false},
	}
	for _, tc := range cases {
		if got := tc.status.Valid(); got != tc.want {
			t.Errorf("PendingStatus(%q).Valid() = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestPostStatusValid(t *testing.T) {
	cases := []struct {
		status PostStatus
		want   bool
	}{
		{PostDraft, true},
		{PostPublished, true},
		{PostArchived, true},
		{PostStatus(""), false},
		{PostStatus("pending_review"), false},
	}
	for _, tc := range cases {
		if got := tc.status.Valid(); got != tc.want {
			t.Errorf("PostStatus(%q).Valid() = %v, want %v", tc.status, got, tc.want)
		}
	}
}
