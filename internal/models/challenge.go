package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// ChallengeType discriminates the challenge variant tables.
type ChallengeType string

const (
	ChallengeCodegen    ChallengeType = "codegen"
	ChallengeRegression ChallengeType = "regression"
)

// ChallengeTypes lists every known variant in display order.
var ChallengeTypes = []ChallengeType{ChallengeCodegen, ChallengeRegression}

// ParseChallengeType validates a type label.
func ParseChallengeType(s string) (ChallengeType, error) {
	switch ChallengeType(s) {
	case ChallengeCodegen, ChallengeRegression:
		return ChallengeType(s), nil
	}
	return "", fmt.Errorf("models: unknown challenge type %q (want codegen or regression)", s)
}

// Table returns the variant table holding this type's challenge payload.
func (t ChallengeType) Table() string {
	return string(t) + "_challenges"
}

// ResponseTable returns the variant table holding this type's response patches.
func (t ChallengeType) ResponseTable() string {
	return string(t) + "_responses"
}

// Challenge is a unit of work issued to miners. Codegen and regression
// challenges share this shape; DynamicChecklist is nil for regression.
type Challenge struct {
	ID               string        `json:"challenge_id"`
	Type             ChallengeType `json:"type"`
	CreatedAt        *time.Time    `json:"created_at"`
	ProblemStatement string        `json:"problem_statement"`
	RepositoryURL    string        `json:"repository_url"`
	CommitHash       *string       `json:"commit_hash"`
	ContextFilePaths []string      `json:"context_file_paths"`
	DynamicChecklist []string      `json:"dynamic_checklist"`
}

// ToMap flattens the challenge into a row dictionary. List columns are
// JSON-encoded the same way the producer stores them.
func (c Challenge) ToMap() map[string]any {
	m := map[string]any{
		"challenge_id":       c.ID,
		"type":               string(c.Type),
		"created_at":         isoFormat(c.CreatedAt),
		"problem_statement":  c.ProblemStatement,
		"repository_url":     c.RepositoryURL,
		"commit_hash":        c.CommitHash,
		"context_file_paths": encodeList(c.ContextFilePaths),
	}
	if c.Type != ChallengeRegression {
		m["dynamic_checklist"] = encodeList(c.DynamicChecklist)
	}
	return m
}

func encodeList(items []string) string {
	if items == nil {
		items = []string{}
	}
	b, _ := json.Marshal(items)
	return string(b)
}

// ChallengeRow decodes a joined challenge row by column name. It covers both
// the current codegen/regression shape and the older codegen shape that used
// question_text plus two file-pair names.
type ChallengeRow struct {
	ChallengeID           string                      `gorm:"column:challenge_id"`
	Type                  string                      `gorm:"column:type"`
	CreatedAt             Timestamp                   `gorm:"column:created_at"`
	ProblemStatement      *string                     `gorm:"column:problem_statement"`
	QuestionText          *string                     `gorm:"column:question_text"`
	RepositoryURL         *string                     `gorm:"column:repository_url"`
	CommitHash            *string                     `gorm:"column:commit_hash"`
	ContextFilePaths      datatypes.JSONSlice[string] `gorm:"column:context_file_paths"`
	DynamicChecklist      datatypes.JSONSlice[string] `gorm:"column:dynamic_checklist"`
	RelevantFilepair1Name *string                     `gorm:"column:relevant_filepair_1_name"`
	RelevantFilepair2Name *string                     `gorm:"column:relevant_filepair_2_name"`
}

// Challenge converts the row into its entity.
func (r ChallengeRow) Challenge() Challenge {
	c := Challenge{
		ID:               r.ChallengeID,
		Type:             ChallengeType(r.Type),
		CreatedAt:        r.CreatedAt.Ptr(),
		ProblemStatement: deref(r.ProblemStatement),
		RepositoryURL:    deref(r.RepositoryURL),
		CommitHash:       nonEmpty(r.CommitHash),
		ContextFilePaths: []string(r.ContextFilePaths),
	}
	if c.ProblemStatement == "" {
		c.ProblemStatement = deref(r.QuestionText)
	}
	if c.ContextFilePaths == nil {
		for _, p := range []*string{r.RelevantFilepair1Name, r.RelevantFilepair2Name} {
			if p != nil && *p != "" {
				c.ContextFilePaths = append(c.ContextFilePaths, *p)
			}
		}
	}
	if c.Type != ChallengeRegression {
		c.DynamicChecklist = []string(r.DynamicChecklist)
		if c.DynamicChecklist == nil {
			c.DynamicChecklist = []string{}
		}
	}
	if c.ContextFilePaths == nil {
		c.ContextFilePaths = []string{}
	}
	return c
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
