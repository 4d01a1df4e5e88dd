// Package events defines the note-activity events published on every
// successful mutation. They feed the audit consumer and, when configured,
// the external NATS bus.
package events

import "time"

const (
	TypeNoteCreated = "NOTE_CREATED"
	TypeNoteUpdated = "NOTE_UPDATED"
	TypeNoteDeleted = "NOTE_DELETED"
)

type NoteEvent struct {
	Type       string    `json:"type"`
	NoteId     string    `json:"note_id"`
	Title      string    `json:"title,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewNoteEvent(eventType, noteId, title string) NoteEvent {
	return NoteEvent{
		Type:       eventType,
		NoteId:     noteId,
		Title:      title,
		OccurredAt: time.Now(),
	}
}
