package arcade

import (
	"time"

	"github.com/google/uuid"
)

// Outcome is the result of comparing the current closest record against the persisted one
type Outcome string

const (
	OutcomeInitialized Outcome = "initialized"
	OutcomeUnchanged   Outcome = "unchanged"
	OutcomeChanged     Outcome = "changed"
)

// Compare decides whether the closest record changed since the previous check.
// Records are compared by identifier only; name, address or distance edits of the
// same arcade are not a change.
func Compare(previous *State, current *Closest) Outcome {
	if previous == nil || previous.Closest == nil {
		return OutcomeInitialized
	}
	if previous.Closest.ID == current.Record.ID {
		return OutcomeUnchanged
	}
	return OutcomeChanged
}

// ChangeEvent describes a transition between two closest records
type ChangeEvent struct {
	ID                    string
	Observer              string
	CheckedAt             time.Time
	SourceURL             string
	Previous              *Record
	PreviousDistanceMiles float64
	PreviousCheckedAt     time.Time
	Current               *Record
	CurrentDistanceMiles  float64
}

// NewChangeEvent builds the event handed to notifiers when Compare reports OutcomeChanged
func NewChangeEvent(previous *State, current *Closest, observer Observer) *ChangeEvent {
	evt := &ChangeEvent{
		ID:                   uuid.NewString(),
		Observer:             observer.Label,
		CheckedAt:            current.CheckedAt.UTC(),
		SourceURL:            current.Record.SourceURL,
		Current:              current.Record,
		CurrentDistanceMiles: current.DistanceMiles,
	}
	if previous != nil {
		evt.Previous = previous.Closest
		evt.PreviousDistanceMiles = previous.DistanceMiles
		evt.PreviousCheckedAt = previous.CheckedAt
	}
	return evt
}
