package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oculairmedia/keep-mcp/pkg/keep"
)

func TestCanModify(t *testing.T) {
	session := keep.NewSession("")
	label := session.CreateLabel(OwnershipLabel)
	otherLabel := session.CreateLabel("groceries")

	owned := session.CreateNote("owned", "")
	owned.AddLabel(label)

	tagged := session.CreateNote("tagged", "")
	tagged.AddLabel(otherLabel)

	bare := session.CreateNote("bare", "")

	tests := []struct {
		name       string
		unsafeMode bool
		note       *keep.Note
		want       bool
	}{
		{"ownership label, safe mode", false, owned, true},
		{"foreign label only, safe mode", false, tagged, false},
		{"no labels, safe mode", false, bare, false},
		{"ownership label, unsafe mode", true, owned, true},
		{"foreign label only, unsafe mode", true, tagged, true},
		{"no labels, unsafe mode", true, bare, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guard := NewModificationGuard(tt.unsafeMode)
			assert.Equal(t, tt.want, guard.CanModify(tt.note))
		})
	}
}

func TestCanModifyIsPure(t *testing.T) {
	session := keep.NewSession("")
	note := session.CreateNote("title", "text")

	guard := NewModificationGuard(false)
	guard.CanModify(note)
	guard.CanModify(note)

	assert.Equal(t, "title", note.Title())
	assert.Equal(t, "text", note.Text())
	assert.Empty(t, note.Labels())
}
