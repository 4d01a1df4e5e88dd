package service

import "github.com/oculairmedia/keep-mcp/pkg/keep"

// OwnershipLabel marks notes created by this gateway. Only labeled notes may
// be mutated or deleted unless unsafe mode is on.
const OwnershipLabel = "keep-mcp"

// ModificationGuard decides whether a note may be mutated. The unsafe flag is
// captured at construction so tests can vary it per instance instead of
// flipping process-wide state.
type ModificationGuard struct {
	unsafeMode bool
}

func NewModificationGuard(unsafeMode bool) *ModificationGuard {
	return &ModificationGuard{unsafeMode: unsafeMode}
}

// CanModify is a pure predicate over the note's current label set: true iff
// unsafe mode is enabled or the note carries the ownership label.
func (g *ModificationGuard) CanModify(note *keep.Note) bool {
	if g.unsafeMode {
		return true
	}
	return note.HasLabel(OwnershipLabel)
}
