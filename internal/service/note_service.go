package service

import (
	"context"
	"fmt"

	"github.com/oculairmedia/keep-mcp/internal/dto"
	"github.com/oculairmedia/keep-mcp/internal/mapper"
	"github.com/oculairmedia/keep-mcp/internal/pkg/apperror"
	"github.com/oculairmedia/keep-mcp/internal/pkg/logger"
	"github.com/oculairmedia/keep-mcp/pkg/events"
)

type INoteService interface {
	Search(ctx context.Context, query string) (*dto.NoteListResponse, error)
	Get(ctx context.Context, id string) (*dto.NoteResponse, error)
	Create(ctx context.Context, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, id string) (*dto.DeleteNoteResponse, error)
	Connected(ctx context.Context) bool
}

type noteService struct {
	provider         SessionProvider
	guard            *ModificationGuard
	noteMapper       *mapper.NoteMapper
	publisherService IPublisherService
	log              logger.ILogger
}

func NewNoteService(
	provider SessionProvider,
	guard *ModificationGuard,
	noteMapper *mapper.NoteMapper,
	publisherService IPublisherService,
	log logger.ILogger,
) INoteService {
	return &noteService{
		provider:         provider,
		guard:            guard,
		noteMapper:       noteMapper,
		publisherService: publisherService,
		log:              log,
	}
}

func (s *noteService) session(ctx context.Context) (KeepSession, error) {
	session, err := s.provider(ctx)
	if err != nil {
		return nil, apperror.Unavailable(err)
	}
	return session, nil
}

// Search returns every non-archived, non-trashed note matching the query, in
// the order the session supplies them. An empty query lists the whole
// account, which is how "list all" is implemented.
func (s *noteService) Search(ctx context.Context, query string) (*dto.NoteListResponse, error) {
	session, err := s.session(ctx)
	if err != nil {
		return nil, err
	}

	notes := session.Find(query, false, false)
	records := s.noteMapper.ToResponseList(notes)
	return &dto.NoteListResponse{Notes: records, Count: len(records)}, nil
}

func (s *noteService) Get(ctx context.Context, id string) (*dto.NoteResponse, error) {
	session, err := s.session(ctx)
	if err != nil {
		return nil, err
	}

	note, ok := session.Get(id)
	if !ok {
		return nil, apperror.NotFound("Note with ID %s not found", id)
	}
	return s.noteMapper.ToResponse(note), nil
}

// Create makes the note, attaches the ownership label (creating the label
// once per account), and syncs before returning so the caller can rely on
// the returned identifier.
func (s *noteService) Create(ctx context.Context, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	session, err := s.session(ctx)
	if err != nil {
		return nil, err
	}

	note := session.CreateNote(deref(req.Title), deref(req.Text))

	label := session.FindLabel(OwnershipLabel)
	if label == nil {
		label = session.CreateLabel(OwnershipLabel)
	}
	note.AddLabel(label)

	if err := session.Sync(ctx); err != nil {
		return nil, apperror.Upstream(err)
	}

	s.publish(ctx, events.NewNoteEvent(events.TypeNoteCreated, note.Id(), note.Title()))
	return s.noteMapper.ToResponse(note), nil
}

// Update overwrites only the fields the request supplies. A request with
// neither field still syncs and returns the unchanged record.
func (s *noteService) Update(ctx context.Context, id string, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	session, err := s.session(ctx)
	if err != nil {
		return nil, err
	}

	note, ok := session.Get(id)
	if !ok {
		return nil, apperror.NotFound("Note with ID %s not found", id)
	}
	if !s.guard.CanModify(note) {
		return nil, forbiddenError(id)
	}

	if req.Title != nil {
		note.SetTitle(*req.Title)
	}
	if req.Text != nil {
		note.SetText(*req.Text)
	}

	if err := session.Sync(ctx); err != nil {
		return nil, apperror.Upstream(err)
	}

	s.publish(ctx, events.NewNoteEvent(events.TypeNoteUpdated, note.Id(), note.Title()))
	return s.noteMapper.ToResponse(note), nil
}

// Delete trashes the note, which the Keep service recognizes as a soft
// delete, and syncs the marker upstream.
func (s *noteService) Delete(ctx context.Context, id string) (*dto.DeleteNoteResponse, error) {
	session, err := s.session(ctx)
	if err != nil {
		return nil, err
	}

	note, ok := session.Get(id)
	if !ok {
		return nil, apperror.NotFound("Note with ID %s not found", id)
	}
	if !s.guard.CanModify(note) {
		return nil, forbiddenError(id)
	}

	note.Trash()
	if err := session.Sync(ctx); err != nil {
		return nil, apperror.Upstream(err)
	}

	s.publish(ctx, events.NewNoteEvent(events.TypeNoteDeleted, note.Id(), note.Title()))
	return &dto.DeleteNoteResponse{
		Message: fmt.Sprintf("Note %s marked for deletion", id),
		Status:  "success",
	}, nil
}

// Connected reports whether the shared session can be (or already was)
// established. Health checks use this instead of a data operation.
func (s *noteService) Connected(ctx context.Context) bool {
	_, err := s.provider(ctx)
	return err == nil
}

// publish failures only cost the audit trail, never the request.
func (s *noteService) publish(ctx context.Context, event events.NoteEvent) {
	if s.publisherService == nil {
		return
	}
	if err := s.publisherService.Publish(ctx, event); err != nil {
		s.log.Warn("note", "Failed to publish note event", map[string]interface{}{
			"type":    event.Type,
			"note_id": event.NoteId,
			"error":   err.Error(),
		})
	}
}

func forbiddenError(id string) error {
	return apperror.Forbidden(
		"Note with ID %s cannot be modified (missing %s label and UNSAFE_MODE is not enabled)",
		id, OwnershipLabel,
	)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
