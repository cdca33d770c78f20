// Package wizard implements the stepped collection of one record's fields.
// Transitions are pure functions over an explicit State so they can be
// tested without any surrounding machinery; Service adds session bookkeeping
// and store integration on top.
package wizard

import (
	"errors"
	"time"

	"inventario-backend/internal/domain/models"
)

// ErrEmptyDraft signals a quick add with nothing to save.
var ErrEmptyDraft = errors.New("nothing to save")

// State is the wizard's full mutable state: the current step and the draft
// under construction. The zero value is not meaningful; use NewState.
type State struct {
	Step  int          `json:"step"`
	Draft models.Draft `json:"draft"`
}

// NewState returns the initial state: step zero and a reset draft.
func NewState(fs models.FieldSet) State {
	return State{Step: 0, Draft: fs.EmptyDraft()}
}

// CurrentField returns the field the wizard is prompting for. The step is
// taken modulo the field count, mirroring how submissions are addressed.
func CurrentField(fs models.FieldSet, st State) models.Field {
	return fs.At(st.Step % fs.Len())
}

// Submit stores value into the draft slot for the field at the current step.
// Submitting the last field finalizes the draft into a record stamped with
// now, resets the draft and cycles the step back to zero; the wizard has no
// terminal state. Otherwise the step advances by one.
func Submit(fs models.FieldSet, st State, value string, now time.Time) (State, *models.Record) {
	idx := st.Step % fs.Len()
	st.Draft = st.Draft.WithValue(fs.At(idx).Key, value)

	if idx == fs.Len()-1 {
		rec := st.Draft.Finalize(now)
		return NewState(fs), &rec
	}

	st.Step++
	return st, nil
}

// Back steps to the previous field, floored at the first one.
func Back(st State) State {
	if st.Step > 0 {
		st.Step--
	}
	return st
}

// QuickAdd bypasses the stepper and finalizes whatever partial draft exists,
// however many fields are filled. A draft with every field empty is rejected
// with ErrEmptyDraft and nothing changes.
func QuickAdd(fs models.FieldSet, st State, now time.Time) (State, *models.Record, error) {
	if st.Draft.IsEmpty() {
		return st, nil, ErrEmptyDraft
	}

	rec := st.Draft.Finalize(now)
	return NewState(fs), &rec, nil
}
