package dto

// Create and update bodies both carry optional fields: nil means "leave the
// attribute untouched" on update and "empty" on create. Length caps follow
// the limits the Keep service itself enforces.
type CreateNoteRequest struct {
	Title *string `json:"title" validate:"omitempty,max=999"`
	Text  *string `json:"text" validate:"omitempty,max=19999"`
}

type UpdateNoteRequest struct {
	Title *string `json:"title" validate:"omitempty,max=999"`
	Text  *string `json:"text" validate:"omitempty,max=19999"`
}

type LabelResponse struct {
	Name string `json:"name"`
}

// NoteResponse is the transport record for a note. Title, text and color are
// nullable; labels is always present, possibly empty.
type NoteResponse struct {
	Id     string          `json:"id"`
	Title  *string         `json:"title"`
	Text   *string         `json:"text"`
	Pinned bool            `json:"pinned"`
	Color  *string         `json:"color"`
	Labels []LabelResponse `json:"labels"`
}

type NoteListResponse struct {
	Notes []*NoteResponse `json:"notes"`
	Count int             `json:"count"`
}

type DeleteNoteResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}
