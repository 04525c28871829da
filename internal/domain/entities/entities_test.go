package entities

import "testing"

func TestStudentEffectiveStatus(t *testing.T) {
	cases := []struct {
		status   StudentStatus
		want     StudentStatus
		approved bool
	}{
		{StudentStatusUnspecified, StudentStatusApproved, true},
		{StudentStatusPending, StudentStatusPending, false},
		{StudentStatusApproved, StudentStatusApproved, true},
		{StudentStatusRejected, StudentStatusRejected, false},
	}

	for _, tc := range cases {
		s := Student{Status: tc.status}
		if got := s.EffectiveStatus(); got != tc.want {
			t.Errorf("EffectiveStatus(%q) = %q, want %q", tc.status, got, tc.want)
		}
		if got := s.IsApproved(); got != tc.approved {
			t.Errorf("IsApproved(%q) = %v, want %v", tc.status, got, tc.approved)
		}
	}
}

func TestStudentStatusIsDecision(t *testing.T) {
	if StudentStatusPending.IsDecision() || StudentStatusUnspecified.IsDecision() {
		t.Error("pending and unspecified are not decisions")
	}
	if !StudentStatusApproved.IsDecision() || !StudentStatusRejected.IsDecision() {
		t.Error("approved and rejected are decisions")
	}
}

func TestBookingConflictsWith(t *testing.T) {
	base := Booking{Date: "2023-05-20", Time: "10:00", Court: "Pista 1", Status: BookingStatusPending}

	same := base
	if !base.ConflictsWith(&same) {
		t.Error("identical slot must conflict")
	}

	otherCourt := base
	otherCourt.Court = "Pista 2"
	if base.ConflictsWith(&otherCourt) {
		t.Error("different court must not conflict")
	}

	otherTime := base
	otherTime.Time = "11:00"
	if base.ConflictsWith(&otherTime) {
		t.Error("different time must not conflict")
	}

	cancelled := base
	cancelled.Status = BookingStatusCancelled
	if base.ConflictsWith(&cancelled) {
		t.Error("cancelled booking must release its slot")
	}
}

func TestEventIsRegistered(t *testing.T) {
	e := Event{Registrations: []string{"a", "b"}}
	if !e.IsRegistered("a") || e.IsRegistered("c") {
		t.Error("membership check wrong")
	}
}
