package models

import "time"

// ResponseKind says which source table a response was read from.
type ResponseKind string

const (
	ResponseBase       ResponseKind = "base"
	ResponseCodegen    ResponseKind = "codegen"
	ResponseRegression ResponseKind = "regression"
)

// KindFor maps a challenge type to the response variant it produces.
func KindFor(t ChallengeType) ResponseKind {
	switch t {
	case ChallengeCodegen:
		return ResponseCodegen
	case ChallengeRegression:
		return ResponseRegression
	}
	return ResponseBase
}

// Response is a miner's answer to a challenge. All three variants share this
// record; Patch is only populated for codegen and regression responses.
//
// ProcessingTime is the float the producer stored. Wall-clock elapsed time
// (CompletedAt - ReceivedAt) is derived separately by the aggregate package.
type Response struct {
	ID             int64         `json:"response_id"`
	Kind           ResponseKind  `json:"kind"`
	ChallengeID    string        `json:"challenge_id"`
	Type           ChallengeType `json:"type"`
	MinerHotkey    string        `json:"miner_hotkey"`
	NodeID         *int64        `json:"node_id"`
	ProcessingTime *float64      `json:"processing_time"`
	ReceivedAt     time.Time     `json:"received_at"`
	CompletedAt    *time.Time    `json:"completed_at"`
	Evaluated      bool          `json:"evaluated"`
	Score          *float64      `json:"score"`
	EvaluatedAt    *time.Time    `json:"evaluated_at"`
	Patch          *string       `json:"response_patch"`
}

// HasPatch reports whether the variant carries a patch payload.
func (r Response) HasPatch() bool {
	return r.Kind != ResponseBase || r.Patch != nil
}

// ToMap flattens the response into a row dictionary.
func (r Response) ToMap() map[string]any {
	m := map[string]any{
		"response_id":     r.ID,
		"challenge_id":    r.ChallengeID,
		"miner_hotkey":    r.MinerHotkey,
		"node_id":         r.NodeID,
		"processing_time": r.ProcessingTime,
		"received_at":     isoFormat(&r.ReceivedAt),
		"completed_at":    isoFormat(r.CompletedAt),
		"evaluated":       r.Evaluated,
		"score":           r.Score,
		"evaluated_at":    isoFormat(r.EvaluatedAt),
	}
	if r.Type != "" {
		m["type"] = string(r.Type)
	}
	if r.HasPatch() {
		m["response_patch"] = r.Patch
	}
	return m
}

// ResponseRow decodes a response row by column name. Type, ResponsePatch,
// and VariantPatch come from joins and stay nil when the query does not
// select them. VariantPatch wins over ResponsePatch.
type ResponseRow struct {
	ResponseID     int64     `gorm:"column:response_id"`
	ChallengeID    string    `gorm:"column:challenge_id"`
	Type           *string   `gorm:"column:type"`
	MinerHotkey    string    `gorm:"column:miner_hotkey"`
	NodeID         *int64    `gorm:"column:node_id"`
	ProcessingTime *float64  `gorm:"column:processing_time"`
	ReceivedAt     Timestamp `gorm:"column:received_at"`
	CompletedAt    Timestamp `gorm:"column:completed_at"`
	Evaluated      bool      `gorm:"column:evaluated"`
	Score          *float64  `gorm:"column:score"`
	EvaluatedAt    Timestamp `gorm:"column:evaluated_at"`
	ResponsePatch  *string   `gorm:"column:response_patch"`
	VariantPatch   *string   `gorm:"column:variant_patch"`
}

// Response converts the row into its entity. A missing received_at is
// replaced with now.
func (r ResponseRow) Response(kind ResponseKind, now time.Time) Response {
	resp := Response{
		ID:             r.ResponseID,
		Kind:           kind,
		ChallengeID:    r.ChallengeID,
		Type:           ChallengeType(deref(r.Type)),
		MinerHotkey:    r.MinerHotkey,
		NodeID:         r.NodeID,
		ProcessingTime: r.ProcessingTime,
		ReceivedAt:     now,
		CompletedAt:    r.CompletedAt.Ptr(),
		Evaluated:      r.Evaluated,
		Score:          r.Score,
		EvaluatedAt:    r.EvaluatedAt.Ptr(),
	}
	if r.ReceivedAt.Valid {
		resp.ReceivedAt = r.ReceivedAt.Time
	}
	patch := r.ResponsePatch
	if r.VariantPatch != nil {
		patch = r.VariantPatch
	}
	if kind != ResponseBase || patch != nil {
		resp.Patch = patch
	}
	return resp
}
