package service

import (
	"context"

	"github.com/oculairmedia/keep-mcp/pkg/keep"
)

// KeepSession is the slice of the Keep client the note flows depend on.
// Tests substitute an in-memory fake; production wires the real session
// through SessionProviderFrom.
type KeepSession interface {
	Find(query string, archived, trashed bool) []*keep.Note
	Get(id string) (*keep.Note, bool)
	CreateNote(title, text string) *keep.Note
	FindLabel(name string) *keep.Label
	CreateLabel(name string) *keep.Label
	Sync(ctx context.Context) error
}

// SessionProvider resolves the shared session, authenticating on first use.
type SessionProvider func(ctx context.Context) (KeepSession, error)

func SessionProviderFrom(provider *keep.Provider) SessionProvider {
	return func(ctx context.Context) (KeepSession, error) {
		return provider.Get(ctx)
	}
}
