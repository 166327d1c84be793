package domain

import (
	"testing"
	"time"
)

func TestValidYearMonth(t *testing.T) {
	valid := []string{"2024-01", "2024-12", "1999-05"}
	for _, value := range valid {
		if !ValidYearMonth(value) {
			t.Fatalf("expected %q valid", value)
		}
	}

	invalid := []string{"2024-00", "2024-13", "2024-1", "24-05", "2024/05", "May 2024", ""}
	for _, value := range invalid {
		if ValidYearMonth(value) {
			t.Fatalf("expected %q invalid", value)
		}
	}
}

func TestCurrentYearMonth(t *testing.T) {
	moment := time.Date(2024, time.May, 10, 10, 0, 0, 0, time.Local)
	if got := CurrentYearMonth(moment); got != "2024-05" {
		t.Fatalf("expected 2024-05, got %s", got)
	}
}
