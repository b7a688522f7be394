package model

import "testing"

func TestParseClaimStatus(t *testing.T) {
	for _, valid := range []string{"PENDING", "VERIFYING", "VERIFIED", "FAILED"} {
		if _, err := ParseClaimStatus(valid); err != nil {
			t.Errorf("ParseClaimStatus(%q) unexpected error: %v", valid, err)
		}
	}
	for _, invalid := range []string{"", "pending", "DONE", "VERIFIED "} {
		if _, err := ParseClaimStatus(invalid); err == nil {
			t.Errorf("ParseClaimStatus(%q) expected error", invalid)
		}
	}
}

func TestClaimStatus_Terminal(t *testing.T) {
	if StatusPending.Terminal() || StatusVerifying.Terminal() {
		t.Error("PENDING and VERIFYING must not be terminal")
	}
	if !StatusVerified.Terminal() || !StatusFailed.Terminal() {
		t.Error("VERIFIED and FAILED must be terminal")
	}
}

func TestClaimStatus_AllowedFrom(t *testing.T) {
	contains := func(set []ClaimStatus, s ClaimStatus) bool {
		for _, v := range set {
			if v == s {
				return true
			}
		}
		return false
	}

	if !contains(StatusVerifying.AllowedFrom(), StatusPending) {
		t.Error("PENDING -> VERIFYING must be allowed")
	}
	if !contains(StatusVerifying.AllowedFrom(), StatusFailed) {
		t.Error("FAILED -> VERIFYING (queue retry) must be allowed")
	}
	if contains(StatusVerifying.AllowedFrom(), StatusVerified) {
		t.Error("VERIFIED must never leave VERIFIED")
	}
	// Nothing ever transitions into PENDING
	for _, to := range []ClaimStatus{StatusVerifying, StatusVerified, StatusFailed} {
		if contains(StatusPending.AllowedFrom(), to) {
			t.Errorf("no status may revert to PENDING (found %s)", to)
		}
	}
	if StatusPending.AllowedFrom() != nil {
		t.Error("PENDING must have no inbound transitions")
	}
}

func TestParseVerdictType(t *testing.T) {
	if _, err := ParseVerdictType("PARTIALLY_TRUE"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := ParseVerdictType("PARTIAL"); err == nil {
		t.Error("strict parse must reject the PARTIAL alias")
	}
	if _, err := ParseVerdictType("MAYBE"); err == nil {
		t.Error("strict parse must reject unknown verdicts")
	}
}

func TestParseVerdictLenient(t *testing.T) {
	tests := []struct {
		in   string
		want VerdictType
	}{
		{"TRUE", VerdictTrue},
		{"false", VerdictFalse},
		{" Partial ", VerdictPartiallyTrue},
		{"PARTIALLY_TRUE", VerdictPartiallyTrue},
		{"MISLEADING", VerdictMisleading},
		{"BOGUS", VerdictUnverifiable},
		{"", VerdictUnverifiable},
	}
	for _, tt := range tests {
		if got := ParseVerdictLenient(tt.in); got != tt.want {
			t.Errorf("ParseVerdictLenient(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
