package services

import (
	"fmt"
	"math"

	"github.com/hidrata/quest-backend/internal/models"
)

const (
	StartingLevel   = 1
	InitialXPToNext = 100
	// XPStep is added to the level threshold on every level-up.
	XPStep = 100
	// MaxXPGrant bounds a single grant. Larger values are rejected.
	MaxXPGrant = 1_000_000_000
)

// NewProgression resets p to the starting progression state.
func NewProgression(p *models.Profile) {
	p.Level = StartingLevel
	p.CurrentXP = 0
	p.XPToNext = InitialXPToNext
}

// ApplyXP grants delta experience to p and resolves level-ups. It returns
// the number of levels gained. Non-positive deltas leave p untouched, and
// so does a rejected grant.
//
// On return 0 <= p.CurrentXP < p.XPToNext.
func ApplyXP(p *models.Profile, delta int) (int, error) {
	if delta <= 0 {
		return 0, nil
	}
	if delta > MaxXPGrant || p.CurrentXP > math.MaxInt-delta {
		return 0, fmt.Errorf("%w: add_xp must not exceed %d", ErrInvalidInput, MaxXPGrant)
	}

	// A threshold that is not positive would never let the loop finish.
	if p.XPToNext <= 0 {
		p.XPToNext = InitialXPToNext
	}
	if p.CurrentXP < 0 {
		p.CurrentXP = 0
	}
	if p.Level < StartingLevel {
		p.Level = StartingLevel
	}

	p.CurrentXP += delta

	gained := 0
	for p.CurrentXP >= p.XPToNext {
		p.CurrentXP -= p.XPToNext
		p.Level++
		p.XPToNext += XPStep
		gained++
	}
	return gained, nil
}
