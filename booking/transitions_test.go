package booking

import "testing"

func TestValidTransition(t *testing.T) {
	cases := []struct {
		action string
		from   string
		valid  bool
	}{
		{ActionApprove, "PENDING", true},
		{ActionApprove, "APPROVED", false},
		{ActionApprove, "REJECTED", false},
		{ActionReject, "PENDING", true},
		{ActionReject, "APPROVED", false},
		{ActionReject, "REJECTED", false},
		{ActionCancel, "APPROVED", true},
		{ActionCancel, "PENDING", false},
		{ActionCancel, "REJECTED", false},
		{"unknown", "PENDING", false},
	}

	for _, tt := range cases {
		if got := ValidTransition(tt.action, tt.from); got != tt.valid {
			t.Errorf("ValidTransition(%q, %q) = %v, want %v", tt.action, tt.from, got, tt.valid)
		}
	}
}
