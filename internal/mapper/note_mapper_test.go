package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oculairmedia/keep-mcp/pkg/keep"
)

func TestToResponseEmptyNote(t *testing.T) {
	session := keep.NewSession("")
	note := session.CreateNote("", "")

	m := NewNoteMapper()
	res := m.ToResponse(note)

	require.NotNil(t, res)
	assert.Equal(t, note.Id(), res.Id)
	assert.Nil(t, res.Title)
	assert.Nil(t, res.Text)
	assert.Nil(t, res.Color)
	assert.False(t, res.Pinned)
	assert.NotNil(t, res.Labels, "labels must serialize as an empty list, not null")
	assert.Empty(t, res.Labels)
}

func TestToResponseFullNote(t *testing.T) {
	session := keep.NewSession("")
	note := session.CreateNote("Shopping", "milk, eggs")
	note.SetPinned(true)
	note.SetColor(keep.ColorTeal)
	note.AddLabel(session.CreateLabel("keep-mcp"))
	note.AddLabel(session.CreateLabel("errands"))

	res := NewNoteMapper().ToResponse(note)

	require.NotNil(t, res)
	require.NotNil(t, res.Title)
	assert.Equal(t, "Shopping", *res.Title)
	require.NotNil(t, res.Text)
	assert.Equal(t, "milk, eggs", *res.Text)
	assert.True(t, res.Pinned)
	require.NotNil(t, res.Color)
	assert.Equal(t, "TEAL", *res.Color)
	require.Len(t, res.Labels, 2)
	assert.Equal(t, "keep-mcp", res.Labels[0].Name)
	assert.Equal(t, "errands", res.Labels[1].Name)
}

func TestToResponseDoesNotMutate(t *testing.T) {
	session := keep.NewSession("")
	note := session.CreateNote("title", "text")

	res := NewNoteMapper().ToResponse(note)
	*res.Title = "changed on the record"

	assert.Equal(t, "title", note.Title())
}

func TestToResponseNil(t *testing.T) {
	assert.Nil(t, NewNoteMapper().ToResponse(nil))
}

func TestToResponseList(t *testing.T) {
	session := keep.NewSession("")
	first := session.CreateNote("first", "")
	second := session.CreateNote("second", "")

	out := NewNoteMapper().ToResponseList([]*keep.Note{first, second})

	require.Len(t, out, 2)
	assert.Equal(t, first.Id(), out[0].Id)
	assert.Equal(t, second.Id(), out[1].Id)
}
