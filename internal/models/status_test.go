package models

import "testing"

func TestDayStatus_String(t *testing.T) {
	tests := []struct {
		status DayStatus
		want   string
	}{
		{StatusUnmarked, "unmarked"},
		{StatusSuccess, "success"},
		{StatusFailure, "failure"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestDayStatus_Marked(t *testing.T) {
	if StatusUnmarked.Marked() {
		t.Error("Expected unmarked day to report Marked() == false")
	}
	if !StatusSuccess.Marked() || !StatusFailure.Marked() {
		t.Error("Expected explicit outcomes to report Marked() == true")
	}
}
