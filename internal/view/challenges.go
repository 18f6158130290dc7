package view

import (
	"context"
	"fmt"

	"github.com/zulandar/cave/internal/models"
)

// ChallengesView lists the challenges of one type with an optional detail.
type ChallengesView struct {
	Notice
	Type       models.ChallengeType `json:"type"`
	Challenges []models.Challenge   `json:"challenges"`
	Total      int                  `json:"total"`
	Selected   *models.Challenge    `json:"selected,omitempty"`
	Detail     Notice               `json:"detail"`
}

// Challenges loads every challenge of type t. selectedID picks the detail
// row; an empty or unknown id yields a StatusNoSelection detail.
func (l *Loader) Challenges(ctx context.Context, t models.ChallengeType, selectedID string) ChallengesView {
	ctx, done := l.begin(ctx, "challenges_"+string(t))
	v := ChallengesView{Type: t, Challenges: []models.Challenge{}}
	defer func() { done(&v.Notice, v.Total) }()

	if l.cfgErr != nil {
		v.Notice = l.failure("challenges", l.cfgErr)
		return v
	}
	challenges, err := l.records.LoadChallenges(ctx, t)
	if err != nil {
		v.Notice = l.failure("challenges", err)
		return v
	}

	v.Challenges = challenges
	v.Total = len(challenges)
	if v.Total == 0 {
		v.Notice = empty(fmt.Sprintf("No %s challenges yet", t))
		v.Detail = noSelection("No challenge to select")
		return v
	}
	v.Notice = ok()
	v.Selected, v.Detail = selectChallenge(challenges, selectedID)
	return v
}

func selectChallenge(challenges []models.Challenge, id string) (*models.Challenge, Notice) {
	if id == "" {
		return nil, noSelection("Select a challenge to see its details")
	}
	for i := range challenges {
		if challenges[i].ID == id {
			c := challenges[i]
			return &c, ok()
		}
	}
	return nil, noSelection(fmt.Sprintf("Challenge %s not found; select another", id))
}
