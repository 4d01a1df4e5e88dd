package keep

import (
	"context"
	"sync"
)

// Provider hands out the process-wide session. The first call authenticates
// and syncs; later calls reuse the handle. An authentication failure is
// memoized and returned again rather than silently retried, matching the
// behaviour monitoring relies on: a bad credential stays unhealthy until the
// process restarts with a fixed one.
type Provider struct {
	email       string
	masterToken string
	baseURL     string

	once    sync.Once
	session *Session
	err     error
}

func NewProvider(email, masterToken, baseURL string) *Provider {
	return &Provider{
		email:       email,
		masterToken: masterToken,
		baseURL:     baseURL,
	}
}

func (p *Provider) Get(ctx context.Context) (*Session, error) {
	p.once.Do(func() {
		session := NewSession(p.baseURL)
		if err := session.Login(ctx, p.email, p.masterToken); err != nil {
			p.err = err
			return
		}
		p.session = session
	})
	if p.err != nil {
		return nil, p.err
	}
	return p.session, nil
}
