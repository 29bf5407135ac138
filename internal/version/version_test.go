package version

import "testing"

func TestGetSchemaVersion(t *testing.T) {
	if got := GetSchemaVersion("0.2.1"); got != "0.2.0" {
		t.Errorf("expected 0.2.0, got %s", got)
	}
}

func TestVersionComparison(t *testing.T) {
	if !IsVersionGreaterThan("0.2.0", "0.1.0") {
		t.Error("0.2.0 should be greater than 0.1.0")
	}
	if IsVersionGreaterThan("0.2.0", "0.2.0") {
		t.Error("0.2.0 is not greater than itself")
	}
	if !IsVersionGreaterOrEqualThan("0.2.0", "0.2.0") {
		t.Error("0.2.0 should compare equal to itself")
	}
}
