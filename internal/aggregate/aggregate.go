// Package aggregate derives values from loaded entities: wall-clock elapsed
// time per response and mean probe latency per node.
package aggregate

import (
	"fmt"
	"slices"
	"time"

	"github.com/zulandar/cave/internal/models"
)

// Elapsed returns completed - received floored to whole seconds. It reports
// false when the response has not completed.
func Elapsed(received time.Time, completed *time.Time) (time.Duration, bool) {
	if completed == nil {
		return 0, false
	}
	return floorSeconds(completed.Sub(received)), true
}

// ResponseElapsed is Elapsed over a response's own timestamps.
func ResponseElapsed(r models.Response) (time.Duration, bool) {
	return Elapsed(r.ReceivedAt, r.CompletedAt)
}

func floorSeconds(d time.Duration) time.Duration {
	t := d.Truncate(time.Second)
	if t > d {
		t -= time.Second
	}
	return t
}

// FormatElapsed renders d as H:MM:SS, prefixed with a day count when d spans
// a day or more. Negative durations borrow a whole negative day, so -5s is
// "-1 day, 23:59:55". Sub-second precision is dropped.
func FormatElapsed(d time.Duration) string {
	secs := int64(floorSeconds(d) / time.Second)
	days := secs / 86400
	rem := secs % 86400
	if rem < 0 {
		days--
		rem += 86400
	}
	hms := fmt.Sprintf("%d:%02d:%02d", rem/3600, rem%3600/60, rem%60)
	switch days {
	case 0:
		return hms
	case 1, -1:
		return fmt.Sprintf("%d day, %s", days, hms)
	default:
		return fmt.Sprintf("%d days, %s", days, hms)
	}
}

// MeanResponseTime groups checks by node and averages response_time_ms.
// Nodes without checks are absent from the result.
func MeanResponseTime(checks []models.AvailabilityCheck) map[int64]float64 {
	sums := make(map[int64]float64)
	counts := make(map[int64]int)
	for _, c := range checks {
		sums[c.NodeID] += c.ResponseTimeMs
		counts[c.NodeID]++
	}
	means := make(map[int64]float64, len(sums))
	for node, sum := range sums {
		means[node] = sum / float64(counts[node])
	}
	return means
}

// NodeMean is one bar of the per-node latency chart.
type NodeMean struct {
	NodeID int64   `json:"node_id"`
	MeanMs float64 `json:"mean_response_time_ms"`
}

// NodeMeans returns MeanResponseTime as a slice sorted by node id.
func NodeMeans(checks []models.AvailabilityCheck) []NodeMean {
	means := MeanResponseTime(checks)
	out := make([]NodeMean, 0, len(means))
	for node, mean := range means {
		out = append(out, NodeMean{NodeID: node, MeanMs: mean})
	}
	slices.SortFunc(out, func(a, b NodeMean) int {
		switch {
		case a.NodeID < b.NodeID:
			return -1
		case a.NodeID > b.NodeID:
			return 1
		}
		return 0
	})
	return out
}

// AvailabilitySummary condenses a set of availability checks.
type AvailabilitySummary struct {
	Total     int        `json:"total"`
	Available int        `json:"available"`
	Nodes     []NodeMean `json:"nodes"`
}

// Summarize counts checks and computes per-node means.
func Summarize(checks []models.AvailabilityCheck) AvailabilitySummary {
	s := AvailabilitySummary{Total: len(checks), Nodes: NodeMeans(checks)}
	for _, c := range checks {
		if c.IsAvailable {
			s.Available++
		}
	}
	return s
}
