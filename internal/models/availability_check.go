package models

import (
	"fmt"
	"time"
)

// AvailabilityCheck is one liveness probe result for a node.
type AvailabilityCheck struct {
	ID             int64      `json:"id"`
	NodeID         int64      `json:"node_id"`
	Hotkey         string     `json:"hotkey"`
	CheckedAt      *time.Time `json:"checked_at"`
	IsAvailable    bool       `json:"is_available"`
	ResponseTimeMs float64    `json:"response_time_ms"`
	Error          *string    `json:"error"`
}

// ToMap flattens the check into a row dictionary.
func (c AvailabilityCheck) ToMap() map[string]any {
	return map[string]any{
		"id":               c.ID,
		"node_id":          c.NodeID,
		"hotkey":           c.Hotkey,
		"checked_at":       isoFormat(c.CheckedAt),
		"is_available":     c.IsAvailable,
		"response_time_ms": c.ResponseTimeMs,
		"error":            c.Error,
	}
}

// AvailabilityCheckRow decodes an availability_checks row by column name.
// NodeID and ResponseTimeMs are pointers so a NULL is seen rather than read
// as zero.
type AvailabilityCheckRow struct {
	ID             int64     `gorm:"column:id"`
	NodeID         *int64    `gorm:"column:node_id"`
	Hotkey         string    `gorm:"column:hotkey"`
	CheckedAt      Timestamp `gorm:"column:checked_at"`
	IsAvailable    bool      `gorm:"column:is_available"`
	ResponseTimeMs *float64  `gorm:"column:response_time_ms"`
	Error          *string   `gorm:"column:error"`
}

// AvailabilityCheck converts the row into its entity. A row without a node
// or a response time is malformed.
func (r AvailabilityCheckRow) AvailabilityCheck() (AvailabilityCheck, error) {
	switch {
	case r.NodeID == nil:
		return AvailabilityCheck{}, fmt.Errorf("models: availability check %d: node_id is NULL", r.ID)
	case r.ResponseTimeMs == nil:
		return AvailabilityCheck{}, fmt.Errorf("models: availability check %d: response_time_ms is NULL", r.ID)
	}
	return AvailabilityCheck{
		ID:             r.ID,
		NodeID:         *r.NodeID,
		Hotkey:         r.Hotkey,
		CheckedAt:      r.CheckedAt.Ptr(),
		IsAvailable:    r.IsAvailable,
		ResponseTimeMs: *r.ResponseTimeMs,
		Error:          r.Error,
	}, nil
}
