package keep

import (
	"sync"

	"github.com/google/uuid"
)

// ColorValue is one of the color tokens the Keep API understands.
type ColorValue string

const (
	ColorDefault  ColorValue = "DEFAULT"
	ColorRed      ColorValue = "RED"
	ColorOrange   ColorValue = "ORANGE"
	ColorYellow   ColorValue = "YELLOW"
	ColorGreen    ColorValue = "GREEN"
	ColorTeal     ColorValue = "TEAL"
	ColorBlue     ColorValue = "BLUE"
	ColorDarkBlue ColorValue = "CERULEAN"
	ColorPurple   ColorValue = "PURPLE"
	ColorPink     ColorValue = "PINK"
	ColorBrown    ColorValue = "BROWN"
	ColorGray     ColorValue = "GRAY"
)

// Label is a named tag, unique by name within an account.
type Label struct {
	Id   string
	Name string
}

// Note is one node of the account's note graph. Mutations only touch the
// local cache; the owning Session pushes them to the remote account on Sync.
// Field access is guarded so the two API surfaces can share one cache, but
// concurrent updates to the same note are not serialized against each other.
type Note struct {
	mu       sync.Mutex
	id       string
	title    string
	text     string
	pinned   bool
	color    ColorValue
	archived bool
	trashed  bool
	labels   []*Label
	dirty    bool
}

func newNote(id, title, text string) *Note {
	if id == "" {
		id = uuid.NewString()
	}
	return &Note{
		id:    id,
		title: title,
		text:  text,
		color: ColorDefault,
	}
}

func (n *Note) Id() string {
	return n.id
}

func (n *Note) Title() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.title
}

func (n *Note) SetTitle(title string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.title = title
	n.dirty = true
}

func (n *Note) Text() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.text
}

func (n *Note) SetText(text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.text = text
	n.dirty = true
}

func (n *Note) Pinned() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.pinned
}

func (n *Note) SetPinned(pinned bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pinned = pinned
	n.dirty = true
}

func (n *Note) Color() ColorValue {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.color
}

func (n *Note) SetColor(color ColorValue) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.color = color
	n.dirty = true
}

func (n *Note) Archived() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.archived
}

func (n *Note) Archive() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.archived = true
	n.dirty = true
}

func (n *Note) Trashed() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.trashed
}

// Trash marks the note for deletion. The remote account keeps trashed notes
// until its own retention window expires; this is not a local-only flag.
func (n *Note) Trash() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.trashed = true
	n.dirty = true
}

// Labels returns the note's labels in attach order.
func (n *Note) Labels() []*Label {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]*Label, len(n.labels))
	copy(out, n.labels)
	return out
}

func (n *Note) AddLabel(label *Label) {
	if label == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, l := range n.labels {
		if l.Id == label.Id {
			return
		}
	}
	n.labels = append(n.labels, label)
	n.dirty = true
}

func (n *Note) RemoveLabel(label *Label) {
	if label == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, l := range n.labels {
		if l.Id == label.Id {
			n.labels = append(n.labels[:i], n.labels[i+1:]...)
			n.dirty = true
			return
		}
	}
}

func (n *Note) HasLabel(name string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, l := range n.labels {
		if l.Name == name {
			return true
		}
	}
	return false
}

func (n *Note) isDirty() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.dirty
}

func (n *Note) clearDirty() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.dirty = false
}
