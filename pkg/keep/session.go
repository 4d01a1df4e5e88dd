// Package keep is a client for the Google Keep notes service. A Session
// holds the authenticated handle plus an in-memory cache of the account's
// notes and labels; all mutations are local until Sync pushes them upstream.
package keep

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Session struct {
	mu      sync.RWMutex
	api     *apiClient
	notes   map[string]*Note
	order   []string
	labels  map[string]*Label
	version string
}

// NewSession builds an unauthenticated session. baseURL overrides the Google
// endpoints, which the tests use to point at a local fake.
func NewSession(baseURL string) *Session {
	return &Session{
		api:    newAPIClient(baseURL),
		notes:  make(map[string]*Note),
		labels: make(map[string]*Label),
	}
}

// Login exchanges the master token for an access token and performs the
// initial full sync so the cache reflects the remote account.
func (s *Session) Login(ctx context.Context, email, masterToken string) error {
	if email == "" || masterToken == "" {
		return &AuthError{Reason: "GOOGLE_EMAIL and GOOGLE_MASTER_TOKEN must be set"}
	}
	if err := s.api.authenticate(ctx, email, masterToken); err != nil {
		return err
	}
	return s.Sync(ctx)
}

// Find returns the cached notes whose archived/trashed flags match the given
// values and whose title or text contains the query. An empty query matches
// every such note. Order is the order the remote account supplied.
func (s *Session) Find(query string, archived, trashed bool) []*Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(query)
	var out []*Note
	for _, id := range s.order {
		note := s.notes[id]
		if note.Archived() != archived || note.Trashed() != trashed {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(note.Title()), needle) &&
			!strings.Contains(strings.ToLower(note.Text()), needle) {
			continue
		}
		out = append(out, note)
	}
	return out
}

func (s *Session) Get(id string) (*Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	note, ok := s.notes[id]
	return note, ok
}

// CreateNote adds a note to the local cache. It only exists remotely after
// the next Sync.
func (s *Session) CreateNote(title, text string) *Note {
	note := newNote("", title, text)
	note.dirty = true

	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes[note.id] = note
	s.order = append(s.order, note.id)
	return note
}

func (s *Session) FindLabel(name string) *Label {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, label := range s.labels {
		if strings.EqualFold(label.Name, name) {
			return label
		}
	}
	return nil
}

// CreateLabel registers a new label in the local cache. Callers are expected
// to FindLabel first; Keep rejects duplicate names on sync.
func (s *Session) CreateLabel(name string) *Label {
	label := &Label{Id: uuid.NewString(), Name: name}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.labels[label.Id] = label
	return label
}

// Sync uploads dirty notes and the label set, then merges the server's view
// back into the cache. Failures propagate immediately; there is no retry.
func (s *Session) Sync(ctx context.Context) error {
	s.mu.Lock()
	var dirty []*Note
	var nodes []wireNode
	for _, id := range s.order {
		note := s.notes[id]
		if note.isDirty() {
			dirty = append(dirty, note)
			nodes = append(nodes, noteToWire(note))
		}
	}
	labels := make([]wireLabel, 0, len(s.labels))
	for _, label := range s.labels {
		labels = append(labels, wireLabel{MainId: label.Id, Name: label.Name})
	}
	version := s.version
	s.mu.Unlock()

	resp, err := s.api.changes(ctx, version, nodes, labels)
	if err != nil {
		return fmt.Errorf("sync: %w", err)
	}

	for _, note := range dirty {
		note.clearDirty()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.version = resp.ToVersion
	for _, wl := range resp.UserInfo.Labels {
		if existing, ok := s.labels[wl.MainId]; ok {
			existing.Name = wl.Name
		} else {
			s.labels[wl.MainId] = &Label{Id: wl.MainId, Name: wl.Name}
		}
	}
	for _, wn := range resp.Nodes {
		s.mergeNode(wn)
	}
	return nil
}

// mergeNode applies one server node to the cache. Locally dirty notes win
// over the server copy so un-synced edits are not clobbered. Caller holds mu.
func (s *Session) mergeNode(wn wireNode) {
	if wn.Type != "NOTE" {
		return
	}
	note, ok := s.notes[wn.Id]
	if !ok {
		note = newNote(wn.Id, "", "")
		s.notes[wn.Id] = note
		s.order = append(s.order, wn.Id)
	}
	if note.isDirty() {
		return
	}

	note.mu.Lock()
	defer note.mu.Unlock()
	note.title = wn.Title
	note.text = wn.Text
	note.pinned = wn.IsPinned
	note.archived = wn.IsArchived
	note.trashed = wn.Timestamps.Trashed != ""
	if wn.Color != "" {
		note.color = ColorValue(wn.Color)
	}
	note.labels = note.labels[:0]
	for _, ref := range wn.LabelIds {
		if label, found := s.labels[ref.LabelId]; found {
			note.labels = append(note.labels, label)
		}
	}
}

func noteToWire(n *Note) wireNode {
	n.mu.Lock()
	defer n.mu.Unlock()

	wn := wireNode{
		Id:         n.id,
		Kind:       "notes#node",
		Type:       "NOTE",
		ParentId:   "root",
		Title:      n.title,
		Text:       n.text,
		Color:      string(n.color),
		IsPinned:   n.pinned,
		IsArchived: n.archived,
	}
	if n.trashed {
		wn.Timestamps.Trashed = time.Now().UTC().Format(time.RFC3339)
	}
	for _, label := range n.labels {
		wn.LabelIds = append(wn.LabelIds, nodeLabelRef{LabelId: label.Id})
	}
	return wn
}
