package memory

import (
	"context"
	"sync"
	"time"

	"github.com/BruksfildServices01/ink-agenda/internal/domain/media"
	"github.com/BruksfildServices01/ink-agenda/internal/domain/user"
	"github.com/BruksfildServices01/ink-agenda/internal/infra/storage"
)

// ObjectStore keeps uploaded objects in a map.
type ObjectStore struct {
	mu      sync.Mutex
	Objects map[string][]byte
	BaseURL string

	UploadErr error
	DeleteErr error
	Deleted   []string
}

func NewObjectStore(baseURL string) *ObjectStore {
	return &ObjectStore{Objects: map[string][]byte{}, BaseURL: baseURL}
}

func (o *ObjectStore) Upload(_ context.Context, key string, body []byte, _ string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.UploadErr != nil {
		return o.UploadErr
	}
	o.Objects[key] = body
	return nil
}

func (o *ObjectStore) Delete(_ context.Context, key string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.DeleteErr != nil {
		return o.DeleteErr
	}
	delete(o.Objects, key)
	o.Deleted = append(o.Deleted, key)
	return nil
}

func (o *ObjectStore) PublicURL(key string) string {
	return storage.PublicURL(o.BaseURL, key)
}

func (o *ObjectStore) KeyFromURL(raw string) string {
	return storage.KeyFromURL(o.BaseURL, raw)
}

func (o *ObjectStore) Keys() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	keys := make([]string, 0, len(o.Objects))
	for k := range o.Objects {
		keys = append(keys, k)
	}
	return keys
}

var _ media.ObjectStore = (*ObjectStore)(nil)

// Generator returns a fixed image.
type Generator struct {
	Image media.Generated
	Err   error
}

func (g Generator) Generate(context.Context, string) (media.Generated, error) {
	return g.Image, g.Err
}

var _ media.ImageGenerator = Generator{}

// IdentityProvider fakes an external auth service.
type IdentityProvider struct {
	mu        sync.Mutex
	seq       int
	Accounts  map[string]Account
	Tokens    map[string]string
	Recovered []string

	CreateErr error
	LinkErr   error
	DeleteErr error
}

type Account struct {
	Email    string
	Password string
	LocalID  uint
}

func NewIdentityProvider() *IdentityProvider {
	return &IdentityProvider{Accounts: map[string]Account{}, Tokens: map[string]string{}}
}

func (p *IdentityProvider) CreateIdentity(_ context.Context, email, password string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.CreateErr != nil {
		return "", p.CreateErr
	}
	p.seq++
	id := "auth-" + string(rune('a'+p.seq))
	p.Accounts[id] = Account{Email: email, Password: password}
	return id, nil
}

func (p *IdentityProvider) SignIn(_ context.Context, email, password string) (string, user.Identity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for id, acc := range p.Accounts {
		if acc.Email == email && acc.Password == password {
			token := "token-" + id
			p.Tokens[token] = id
			return token, user.Identity{AuthID: id, Email: email, LocalID: acc.LocalID}, nil
		}
	}
	return "", user.Identity{}, user.ErrIdentityRejected
}

func (p *IdentityProvider) LinkLocalID(_ context.Context, authID string, localID uint) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.LinkErr != nil {
		return p.LinkErr
	}
	acc, ok := p.Accounts[authID]
	if !ok {
		return user.ErrIdentityRejected
	}
	acc.LocalID = localID
	p.Accounts[authID] = acc
	return nil
}

func (p *IdentityProvider) DeleteIdentity(_ context.Context, authID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.DeleteErr != nil {
		return p.DeleteErr
	}
	delete(p.Accounts, authID)
	return nil
}

func (p *IdentityProvider) SendRecovery(_ context.Context, email, _ string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Recovered = append(p.Recovered, email)
	return nil
}

func (p *IdentityProvider) GetIdentity(_ context.Context, token string) (user.Identity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	id, ok := p.Tokens[token]
	if !ok {
		return user.Identity{}, user.ErrIdentityRejected
	}
	acc := p.Accounts[id]
	return user.Identity{AuthID: id, Email: acc.Email, LocalID: acc.LocalID}, nil
}

func (p *IdentityProvider) UpdatePassword(_ context.Context, token, password string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	id, ok := p.Tokens[token]
	if !ok {
		return user.ErrIdentityRejected
	}
	acc := p.Accounts[id]
	acc.Password = password
	p.Accounts[id] = acc
	return nil
}

var _ user.IdentityProvider = (*IdentityProvider)(nil)

// ResetTokens is a map-backed reset token store.
type ResetTokens struct {
	mu     sync.Mutex
	tokens map[string]uint
}

func NewResetTokens() *ResetTokens {
	return &ResetTokens{tokens: map[string]uint{}}
}

func (r *ResetTokens) Save(_ context.Context, token string, userID uint, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = userID
	return nil
}

func (r *ResetTokens) Consume(_ context.Context, token string) (uint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.tokens[token]
	if !ok {
		return 0, user.ErrResetTokenInvalid
	}
	delete(r.tokens, token)
	return id, nil
}

func (r *ResetTokens) Tokens() map[string]uint {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]uint, len(r.tokens))
	for k, v := range r.tokens {
		out[k] = v
	}
	return out
}

var _ user.ResetTokenStore = (*ResetTokens)(nil)

// Mailer records sent reset links.
type Mailer struct {
	mu    sync.Mutex
	Links map[string]string
	Err   error
}

func NewMailer() *Mailer {
	return &Mailer{Links: map[string]string{}}
}

func (m *Mailer) SendPasswordReset(_ context.Context, to, _ string, link string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Links[to] = link
	return nil
}

var _ user.Mailer = (*Mailer)(nil)
