package aggregate

import (
	"reflect"
	"testing"
	"time"

	"github.com/zulandar/cave/internal/models"
)

func TestElapsed_DropsSubSecond(t *testing.T) {
	received := time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)
	completed := received.Add(90*time.Second + 700*time.Millisecond)

	d, ok := Elapsed(received, &completed)
	if !ok {
		t.Fatal("Elapsed reported incomplete")
	}
	if d != 90*time.Second {
		t.Errorf("d = %v, want 1m30s", d)
	}
	if got := FormatElapsed(d); got != "0:01:30" {
		t.Errorf("FormatElapsed = %q, want 0:01:30", got)
	}
}

func TestElapsed_NotCompleted(t *testing.T) {
	if _, ok := Elapsed(time.Now(), nil); ok {
		t.Error("Elapsed without completion should report false")
	}
	if _, ok := ResponseElapsed(models.Response{ReceivedAt: time.Now()}); ok {
		t.Error("ResponseElapsed without completion should report false")
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00:00"},
		{5 * time.Second, "0:00:05"},
		{time.Hour + 2*time.Minute + 3*time.Second + 999*time.Millisecond, "1:02:03"},
		{25 * time.Hour, "1 day, 1:00:00"},
		{49 * time.Hour, "2 days, 1:00:00"},
		{-5 * time.Second, "-1 day, 23:59:55"},
		{-4300 * time.Millisecond, "-1 day, 23:59:55"},
	}
	for _, tt := range tests {
		if got := FormatElapsed(tt.d); got != tt.want {
			t.Errorf("FormatElapsed(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func checks() []models.AvailabilityCheck {
	return []models.AvailabilityCheck{
		{NodeID: 1, ResponseTimeMs: 10, IsAvailable: true},
		{NodeID: 1, ResponseTimeMs: 20, IsAvailable: true},
		{NodeID: 2, ResponseTimeMs: 5},
	}
}

func TestMeanResponseTime(t *testing.T) {
	got := MeanResponseTime(checks())
	want := map[int64]float64{1: 15, 2: 5}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MeanResponseTime = %v, want %v", got, want)
	}
	if got := MeanResponseTime(nil); len(got) != 0 {
		t.Errorf("MeanResponseTime(nil) = %v, want empty", got)
	}
}

func TestSummarize(t *testing.T) {
	cs := append([]models.AvailabilityCheck{{NodeID: 9, ResponseTimeMs: 1}}, checks()...)
	got := Summarize(cs)
	want := AvailabilitySummary{
		Total:     4,
		Available: 2,
		Nodes: []NodeMean{
			{NodeID: 1, MeanMs: 15},
			{NodeID: 2, MeanMs: 5},
			{NodeID: 9, MeanMs: 1},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Summarize =\n%+v\nwant\n%+v", got, want)
	}
}
