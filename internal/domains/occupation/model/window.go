package model

import "time"

// Window is the half-open interval [StartedAt, FinishedAt). A nil FinishedAt never ends.
type Window struct {
	StartedAt  time.Time
	FinishedAt *time.Time
}

func (w Window) IsOpen() bool {
	return w.FinishedAt == nil
}

// Conflicts reports whether w, as a candidate, may not coexist with an existing window on the same table.
// Touching bounds (one ends exactly when the other starts) do not conflict.
func (w Window) Conflicts(existing Window) bool {
	existingRunsPastStart := existing.FinishedAt == nil || existing.FinishedAt.After(w.StartedAt)

	// existing starts before the candidate ends
	if (w.FinishedAt == nil || existing.StartedAt.Before(*w.FinishedAt)) && existingRunsPastStart {
		return true
	}

	// existing already running when the candidate starts, zero-length candidates included
	if !existing.StartedAt.After(w.StartedAt) && existingRunsPastStart {
		return true
	}

	// an open candidate claims everything from its start onwards
	return w.FinishedAt == nil && !existing.StartedAt.Before(w.StartedAt)
}

// Equal compares both bounds, treating two nil ends as equal.
func (w Window) Equal(other Window) bool {
	if !w.StartedAt.Equal(other.StartedAt) {
		return false
	}

	if w.FinishedAt == nil || other.FinishedAt == nil {
		return w.FinishedAt == nil && other.FinishedAt == nil
	}

	return w.FinishedAt.Equal(*other.FinishedAt)
}
