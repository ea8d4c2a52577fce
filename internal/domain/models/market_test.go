package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestHistoricalPointAlwaysEmitsVolume(t *testing.T) {
	b, err := json.Marshal(HistoricalPoint{Date: "2024-03-01", Price: 3300})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"volume":0`) {
		t.Fatalf("volume key missing: %s", b)
	}
}

func TestSeriesChangePercent(t *testing.T) {
	s := HistoricalSeries{
		{Date: "2024-03-01", Price: 100},
		{Date: "2024-03-04", Price: 112},
	}
	if got := s.ChangePercent(); got != 12 {
		t.Fatalf("want 12, got %v", got)
	}
	if got := (HistoricalSeries{{Date: "2024-03-01", Price: 100}}).ChangePercent(); got != 0 {
		t.Fatalf("single point: want 0, got %v", got)
	}
}
