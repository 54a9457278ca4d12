package model_test

import (
	"testing"
	"time"

	"billiard/internal/domains/occupation/model"

	"github.com/stretchr/testify/assert"
)

var base = time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)

func at(hours float64) time.Time {
	return base.Add(time.Duration(hours * float64(time.Hour)))
}

func until(hours float64) *time.Time {
	t := at(hours)

	return &t
}

func TestWindow_Conflicts(t *testing.T) {
	tests := []struct {
		name      string
		candidate model.Window
		existing  model.Window
		want      bool
	}{
		{
			name:      "partial overlap at the end",
			candidate: model.Window{StartedAt: at(1.5), FinishedAt: until(3)},
			existing:  model.Window{StartedAt: at(1), FinishedAt: until(2)},
			want:      true,
		},
		{
			name:      "partial overlap at the start",
			candidate: model.Window{StartedAt: at(0.5), FinishedAt: until(1.5)},
			existing:  model.Window{StartedAt: at(1), FinishedAt: until(2)},
			want:      true,
		},
		{
			name:      "candidate nested inside existing",
			candidate: model.Window{StartedAt: at(1.25), FinishedAt: until(1.75)},
			existing:  model.Window{StartedAt: at(1), FinishedAt: until(2)},
			want:      true,
		},
		{
			name:      "existing nested inside candidate",
			candidate: model.Window{StartedAt: at(0), FinishedAt: until(3)},
			existing:  model.Window{StartedAt: at(1), FinishedAt: until(2)},
			want:      true,
		},
		{
			name:      "candidate starts when existing finishes",
			candidate: model.Window{StartedAt: at(2), FinishedAt: until(3)},
			existing:  model.Window{StartedAt: at(1), FinishedAt: until(2)},
			want:      false,
		},
		{
			name:      "candidate finishes when existing starts",
			candidate: model.Window{StartedAt: at(0), FinishedAt: until(1)},
			existing:  model.Window{StartedAt: at(1), FinishedAt: until(2)},
			want:      false,
		},
		{
			name:      "disjoint before",
			candidate: model.Window{StartedAt: at(3), FinishedAt: until(4)},
			existing:  model.Window{StartedAt: at(1), FinishedAt: until(2)},
			want:      false,
		},
		{
			name:      "existing open started earlier",
			candidate: model.Window{StartedAt: at(5), FinishedAt: until(6)},
			existing:  model.Window{StartedAt: at(1)},
			want:      true,
		},
		{
			name:      "existing open starts after bounded candidate",
			candidate: model.Window{StartedAt: at(0), FinishedAt: until(1)},
			existing:  model.Window{StartedAt: at(1)},
			want:      false,
		},
		{
			name:      "candidate open after existing finished",
			candidate: model.Window{StartedAt: at(2)},
			existing:  model.Window{StartedAt: at(1), FinishedAt: until(2)},
			want:      false,
		},
		{
			name:      "candidate open before later existing",
			candidate: model.Window{StartedAt: at(0)},
			existing:  model.Window{StartedAt: at(5), FinishedAt: until(6)},
			want:      true,
		},
		{
			name:      "both open",
			candidate: model.Window{StartedAt: at(3)},
			existing:  model.Window{StartedAt: at(1)},
			want:      true,
		},
		{
			name:      "zero length candidate at existing start",
			candidate: model.Window{StartedAt: at(1), FinishedAt: until(1)},
			existing:  model.Window{StartedAt: at(1), FinishedAt: until(2)},
			want:      true,
		},
		{
			name:      "zero length existing at candidate start with open candidate",
			candidate: model.Window{StartedAt: at(1)},
			existing:  model.Window{StartedAt: at(1), FinishedAt: until(1)},
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.candidate.Conflicts(tt.existing))
		})
	}
}

// For windows of positive length, a conflict is exactly an intersection of the two intervals, whichever side
// is the candidate.
func TestWindow_ConflictsMatchesIntersection(t *testing.T) {
	ends := []*time.Time{nil, until(1), until(2), until(3), until(4)}
	starts := []time.Time{at(0), at(1), at(2), at(3)}

	end := func(w model.Window) time.Time {
		if w.FinishedAt == nil {
			return at(1000)
		}

		return *w.FinishedAt
	}

	var windows []model.Window
	for _, s := range starts {
		for _, f := range ends {
			if f != nil && !f.After(s) {
				continue
			}

			windows = append(windows, model.Window{StartedAt: s, FinishedAt: f})
		}
	}

	for _, a := range windows {
		for _, b := range windows {
			intersects := a.StartedAt.Before(end(b)) && b.StartedAt.Before(end(a))

			assert.Equal(t, intersects, a.Conflicts(b), "candidate %v existing %v", a, b)
			assert.Equal(t, a.Conflicts(b), b.Conflicts(a), "symmetry for %v and %v", a, b)
		}
	}
}

func TestWindow_Equal(t *testing.T) {
	assert.True(t, model.Window{StartedAt: at(1)}.Equal(model.Window{StartedAt: at(1)}))
	assert.True(t, model.Window{StartedAt: at(1), FinishedAt: until(2)}.Equal(model.Window{StartedAt: at(1), FinishedAt: until(2)}))
	assert.False(t, model.Window{StartedAt: at(1)}.Equal(model.Window{StartedAt: at(1), FinishedAt: until(2)}))
	assert.False(t, model.Window{StartedAt: at(1)}.Equal(model.Window{StartedAt: at(2)}))
}

func TestOccupation_Window(t *testing.T) {
	occupation := model.Occupation{ID: "o-1", StartedAt: at(1)}

	assert.True(t, occupation.IsOpen())
	assert.True(t, occupation.Window().IsOpen())
	assert.Equal(t, at(1), occupation.Window().StartedAt)
}
