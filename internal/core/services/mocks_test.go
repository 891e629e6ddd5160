package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/connect-cli/internal/core/domain"
	"github.com/custodia-labs/connect-cli/internal/core/ports/driven"
)

// fakeCatalog serves canned docs and connectors for tests.
type fakeCatalog struct {
	connectors []domain.Connector
	docs       map[string]*domain.ConnectorDocs
	installed  map[string]bool
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		docs:      make(map[string]*domain.ConnectorDocs),
		installed: make(map[string]bool),
	}
}

func (f *fakeCatalog) List(ctx context.Context) ([]domain.Connector, error) {
	return f.connectors, nil
}

func (f *fakeCatalog) Get(ctx context.Context, name string) (*domain.Connector, error) {
	for i := range f.connectors {
		if f.connectors[i].Name == name {
			return &f.connectors[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCatalog) Installed(name string) bool {
	return f.installed[name]
}

func (f *fakeCatalog) Docs(ctx context.Context, name string) (*domain.ConnectorDocs, error) {
	d, ok := f.docs[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

// fakeCredStore keeps records in memory, one per connector, single profile.
type fakeCredStore struct {
	mu      sync.Mutex
	records map[string]domain.CredentialRecord
	saveErr error
}

func newFakeCredStore() *fakeCredStore {
	return &fakeCredStore{records: make(map[string]domain.CredentialRecord)}
}

func (f *fakeCredStore) Load(ctx context.Context, connector string) (domain.CredentialRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[connector]
	if !ok {
		return domain.CredentialRecord{}, nil
	}
	return rec.Merge(nil), nil
}

func (f *fakeCredStore) LoadProfile(ctx context.Context, connector, profile string) (domain.CredentialRecord, error) {
	return f.Load(ctx, connector)
}

func (f *fakeCredStore) Save(ctx context.Context, connector string, patch domain.CredentialRecord) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[connector] = f.records[connector].Merge(patch)
	return nil
}

func (f *fakeCredStore) Clear(ctx context.Context, connector string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.records, connector)
	return nil
}

func (f *fakeCredStore) Profiles(ctx context.Context, connector string) ([]string, error) {
	return []string{"default"}, nil
}

func (f *fakeCredStore) CurrentProfile(connector string) string { return "default" }

func (f *fakeCredStore) UseProfile(ctx context.Context, connector, profile string) error {
	return nil
}

// fakeStateStore is a minimal single-use nonce store without TTL handling.
type fakeStateStore struct {
	mu      sync.Mutex
	entries map[string]domain.OAuthState
}

func newFakeStateStore() *fakeStateStore {
	return &fakeStateStore{entries: make(map[string]domain.OAuthState)}
}

func (f *fakeStateStore) Put(nonce string, state domain.OAuthState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[nonce] = state
}

func (f *fakeStateStore) Take(nonce string) (domain.OAuthState, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry, ok := f.entries[nonce]
	delete(f.entries, nonce)
	return entry, ok
}

// stubExchanger records the requests it receives and replies with canned
// responses.
type stubExchanger struct {
	exchangeReq  *driven.ExchangeRequest
	refreshReq   *driven.RefreshRequest
	exchangeResp *domain.TokenResponse
	refreshResp  *domain.TokenResponse
	exchangeErr  error
	refreshErr   error
}

func (s *stubExchanger) Exchange(ctx context.Context, req driven.ExchangeRequest) (*domain.TokenResponse, error) {
	s.exchangeReq = &req
	if s.exchangeErr != nil {
		return nil, s.exchangeErr
	}
	return s.exchangeResp, nil
}

func (s *stubExchanger) Refresh(ctx context.Context, req driven.RefreshRequest) (*domain.TokenResponse, error) {
	s.refreshReq = &req
	if s.refreshErr != nil {
		return nil, s.refreshErr
	}
	return s.refreshResp, nil
}

// fakeEventStore collects appended events.
type fakeEventStore struct {
	mu     sync.Mutex
	events []domain.AuthEvent
}

func (f *fakeEventStore) Append(ctx context.Context, event domain.AuthEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakeEventStore) List(ctx context.Context, connector string, limit int) ([]domain.AuthEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.AuthEvent(nil), f.events...), nil
}

func (f *fakeEventStore) Close() error { return nil }

func (f *fakeEventStore) kinds() []domain.AuthEventKind {
	f.mu.Lock()
	defer f.mu.Unlock()
	kinds := make([]domain.AuthEventKind, 0, len(f.events))
	for _, e := range f.events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}
