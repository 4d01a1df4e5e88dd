package keep

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeKeepAPI fakes the auth and changes endpoints of the Keep backend.
type fakeKeepAPI struct {
	mu          sync.Mutex
	authCalls   int
	masterToken string

	// the "remote account": echoed back on every changes call
	nodes  []wireNode
	labels []wireLabel

	// nodes uploaded by the most recent changes call
	lastUpload []wireNode
}

func (f *fakeKeepAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.authCalls++
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if r.PostForm.Get("Token") != f.masterToken {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("Error=BadAuthentication"))
			return
		}
		_, _ = w.Write([]byte("SID=fake\nAuth=access-token-1\n"))
	})
	mux.HandleFunc("/notes/v1/changes", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "OAuth access-token-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		var req changesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		f.mu.Lock()
		defer f.mu.Unlock()
		f.lastUpload = req.Nodes
		for _, node := range req.Nodes {
			f.upsertNode(node)
		}
		for _, label := range req.Labels {
			f.upsertLabel(label)
		}

		var resp changesResponse
		resp.ToVersion = "v2"
		resp.Nodes = f.nodes
		resp.UserInfo.Labels = f.labels
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	})
	return mux
}

func (f *fakeKeepAPI) upsertNode(node wireNode) {
	for i, existing := range f.nodes {
		if existing.Id == node.Id {
			f.nodes[i] = node
			return
		}
	}
	f.nodes = append(f.nodes, node)
}

func (f *fakeKeepAPI) upsertLabel(label wireLabel) {
	for _, existing := range f.labels {
		if existing.MainId == label.MainId {
			return
		}
	}
	f.labels = append(f.labels, label)
}

func newFakeAPI(t *testing.T) (*fakeKeepAPI, string) {
	t.Helper()
	api := &fakeKeepAPI{masterToken: "good-token"}
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)
	return api, srv.URL
}

func TestLoginBadCredentials(t *testing.T) {
	_, url := newFakeAPI(t)

	session := NewSession(url)
	err := session.Login(context.Background(), "user@example.com", "wrong-token")
	require.Error(t, err)

	var authErr *AuthError
	assert.ErrorAs(t, err, &authErr)
}

func TestLoginMissingCredentials(t *testing.T) {
	session := NewSession("")
	err := session.Login(context.Background(), "", "")
	var authErr *AuthError
	assert.ErrorAs(t, err, &authErr)
}

func TestCreateNoteSyncRoundtrip(t *testing.T) {
	api, url := newFakeAPI(t)

	session := NewSession(url)
	require.NoError(t, session.Login(context.Background(), "user@example.com", "good-token"))

	note := session.CreateNote("Title", "Text")
	label := session.CreateLabel("keep-mcp")
	note.AddLabel(label)

	require.NoError(t, session.Sync(context.Background()))

	api.mu.Lock()
	require.Len(t, api.lastUpload, 1)
	uploaded := api.lastUpload[0]
	api.mu.Unlock()
	assert.Equal(t, note.Id(), uploaded.Id)
	assert.Equal(t, "NOTE", uploaded.Type)
	assert.Equal(t, "Title", uploaded.Title)
	assert.Equal(t, "Text", uploaded.Text)
	require.Len(t, uploaded.LabelIds, 1)
	assert.Equal(t, label.Id, uploaded.LabelIds[0].LabelId)

	// the note is clean now; a second sync uploads nothing
	require.NoError(t, session.Sync(context.Background()))
	api.mu.Lock()
	assert.Empty(t, api.lastUpload)
	api.mu.Unlock()
}

func TestSyncMergesRemoteNotes(t *testing.T) {
	api, url := newFakeAPI(t)
	api.nodes = []wireNode{
		{Id: "remote-1", Type: "NOTE", Title: "First", Text: "alpha"},
		{Id: "remote-2", Type: "NOTE", Title: "Second", Text: "beta", IsArchived: true},
		{Id: "remote-3", Type: "NOTE", Title: "Third", Timestamps: nodeTimestamps{Trashed: "2026-01-01T00:00:00Z"}},
	}

	session := NewSession(url)
	require.NoError(t, session.Login(context.Background(), "user@example.com", "good-token"))

	active := session.Find("", false, false)
	require.Len(t, active, 1)
	assert.Equal(t, "remote-1", active[0].Id())

	note, ok := session.Get("remote-2")
	require.True(t, ok)
	assert.True(t, note.Archived())

	note, ok = session.Get("remote-3")
	require.True(t, ok)
	assert.True(t, note.Trashed())
}

func TestFindMatchesTitleAndTextCaseInsensitive(t *testing.T) {
	session := NewSession("")
	groceries := session.CreateNote("Groceries", "Milk and eggs")
	session.CreateNote("Workout", "leg day")

	byTitle := session.Find("groceries", false, false)
	require.Len(t, byTitle, 1)
	assert.Equal(t, groceries.Id(), byTitle[0].Id())

	byText := session.Find("MILK", false, false)
	require.Len(t, byText, 1)
	assert.Equal(t, groceries.Id(), byText[0].Id())

	assert.Empty(t, session.Find("no such note", false, false))
	assert.Len(t, session.Find("", false, false), 2)
}

func TestFindPreservesInsertionOrder(t *testing.T) {
	session := NewSession("")
	first := session.CreateNote("a", "")
	second := session.CreateNote("b", "")
	third := session.CreateNote("c", "")

	notes := session.Find("", false, false)
	require.Len(t, notes, 3)
	assert.Equal(t, first.Id(), notes[0].Id())
	assert.Equal(t, second.Id(), notes[1].Id())
	assert.Equal(t, third.Id(), notes[2].Id())
}

func TestTrashedNoteSyncsDeletionMarker(t *testing.T) {
	api, url := newFakeAPI(t)

	session := NewSession(url)
	require.NoError(t, session.Login(context.Background(), "user@example.com", "good-token"))

	note := session.CreateNote("doomed", "")
	require.NoError(t, session.Sync(context.Background()))

	note.Trash()
	require.NoError(t, session.Sync(context.Background()))

	api.mu.Lock()
	require.Len(t, api.lastUpload, 1)
	assert.NotEmpty(t, api.lastUpload[0].Timestamps.Trashed)
	api.mu.Unlock()

	assert.Empty(t, session.Find("", false, false))
}

func TestFindLabelIsCaseInsensitive(t *testing.T) {
	session := NewSession("")
	created := session.CreateLabel("keep-mcp")

	found := session.FindLabel("Keep-MCP")
	require.NotNil(t, found)
	assert.Equal(t, created.Id, found.Id)

	assert.Nil(t, session.FindLabel("unknown"))
}

func TestProviderMemoizesSessionAndFailure(t *testing.T) {
	api, url := newFakeAPI(t)

	provider := NewProvider("user@example.com", "good-token", url)
	first, err := provider.Get(context.Background())
	require.NoError(t, err)
	second, err := provider.Get(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)

	api.mu.Lock()
	assert.Equal(t, 1, api.authCalls)
	api.mu.Unlock()

	bad := NewProvider("user@example.com", "wrong-token", url)
	_, err = bad.Get(context.Background())
	require.Error(t, err)
	_, err2 := bad.Get(context.Background())
	assert.Equal(t, err, err2, "authentication failure is memoized, not retried")
}
