package mapper

import (
	"github.com/oculairmedia/keep-mcp/internal/dto"
	"github.com/oculairmedia/keep-mcp/pkg/keep"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

// ToResponse shapes a note into its transport record. It reads the note's
// state at call time and never mutates it. Empty title/text and the default
// color serialize as null; a note with no labels gets an empty list.
func (m *NoteMapper) ToResponse(n *keep.Note) *dto.NoteResponse {
	if n == nil {
		return nil
	}

	var title, text, color *string
	if v := n.Title(); v != "" {
		title = &v
	}
	if v := n.Text(); v != "" {
		text = &v
	}
	if c := n.Color(); c != "" && c != keep.ColorDefault {
		v := string(c)
		color = &v
	}

	labels := make([]dto.LabelResponse, 0)
	for _, label := range n.Labels() {
		labels = append(labels, dto.LabelResponse{Name: label.Name})
	}

	return &dto.NoteResponse{
		Id:     n.Id(),
		Title:  title,
		Text:   text,
		Pinned: n.Pinned(),
		Color:  color,
		Labels: labels,
	}
}

func (m *NoteMapper) ToResponseList(notes []*keep.Note) []*dto.NoteResponse {
	out := make([]*dto.NoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, m.ToResponse(n))
	}
	return out
}
