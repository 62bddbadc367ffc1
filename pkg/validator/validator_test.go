package validator

import (
	"testing"
	"time"
)

type scheduleInput struct {
	Day    string `json:"day" validate:"required,weekday"`
	Start  string `json:"start" validate:"required,clock"`
	Status string `json:"status" validate:"omitempty,bookingstatus"`
}

func TestValidate_CustomTags(t *testing.T) {
	v := NewValidator()

	if err := v.Validate(&scheduleInput{Day: "Monday", Start: "09:00", Status: "Checked-In"}); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	err := v.Validate(&scheduleInput{Day: "monday", Start: "9am", Status: "Done"})
	if err == nil {
		t.Fatalf("invalid input accepted")
	}
	msgs := v.FormatValidationErrors(err)
	for _, field := range []string{"Day", "Start", "Status"} {
		if _, ok := msgs[field]; !ok {
			t.Fatalf("missing message for %s in %v", field, msgs)
		}
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
		ok   bool
	}{
		{"09:00", 9 * time.Hour, true},
		{"17:30:15", 17*time.Hour + 30*time.Minute + 15*time.Second, true},
		{"24:00", 0, false},
		{"9:00 AM", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseClock(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Fatalf("ParseClock(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
