// Package memory holds map-backed repositories used by use case and handler
// tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/BruksfildServices01/ink-agenda/internal/domain"
	domainClient "github.com/BruksfildServices01/ink-agenda/internal/domain/client"
	"github.com/BruksfildServices01/ink-agenda/internal/domain/media"
	domainSession "github.com/BruksfildServices01/ink-agenda/internal/domain/session"
	domainUser "github.com/BruksfildServices01/ink-agenda/internal/domain/user"
	"github.com/BruksfildServices01/ink-agenda/internal/models"
	"github.com/BruksfildServices01/ink-agenda/internal/timezone"
)

// Store is one shared in-memory database. Deleting a user cascades like the
// Postgres foreign keys do.
type Store struct {
	mu sync.Mutex

	seq      uint
	users    map[uint]models.User
	styles   map[uint]models.Style
	clients  map[uint]models.Client
	sessions map[uint]models.Session
	photos   map[uint]models.Photo
	images   map[uint]models.GeneratedImage

	// FailNext makes the next write return this error.
	FailNext error
}

func NewStore() *Store {
	return &Store{
		users:    map[uint]models.User{},
		styles:   map[uint]models.Style{},
		clients:  map[uint]models.Client{},
		sessions: map[uint]models.Session{},
		photos:   map[uint]models.Photo{},
		images:   map[uint]models.GeneratedImage{},
	}
}

func (s *Store) next() uint {
	s.seq++
	return s.seq
}

func (s *Store) fail() error {
	err := s.FailNext
	s.FailNext = nil
	return err
}

func (s *Store) Clients() *Clients               { return &Clients{s} }
func (s *Store) Sessions() *Sessions             { return &Sessions{s} }
func (s *Store) Users() *Users                   { return &Users{s} }
func (s *Store) Styles() *Styles                 { return &Styles{s} }
func (s *Store) Photos() *Photos                 { return &Photos{s} }
func (s *Store) GeneratedImages() *GeneratedImgs { return &GeneratedImgs{s} }

// ======================================================
// CLIENTS
// ======================================================

type Clients struct{ s *Store }

func (r *Clients) Create(_ context.Context, c *models.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return err
	}
	c.ID = r.s.next()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	r.s.clients[c.ID] = *c
	return nil
}

func (r *Clients) GetForUser(_ context.Context, id, userID uint) (*models.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.clients[id]
	if !ok || c.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *Clients) filter(keep func(models.Client) bool) []models.Client {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Client
	for _, c := range r.s.clients {
		if keep(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *Clients) ListByUser(_ context.Context, userID uint) ([]models.Client, error) {
	out := r.filter(func(c models.Client) bool { return c.UserID == userID })
	sort.SliceStable(out, func(i, j int) bool { return out[i].Nome < out[j].Nome })
	return out, nil
}

func (r *Clients) FindByName(_ context.Context, userID uint, nome string) ([]models.Client, error) {
	return r.filter(func(c models.Client) bool { return c.UserID == userID && c.Nome == nome }), nil
}

func (r *Clients) FindByPhone(_ context.Context, telefone string) ([]models.Client, error) {
	return r.filter(func(c models.Client) bool { return c.Telefone == telefone }), nil
}

func (r *Clients) Update(_ context.Context, c *models.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return err
	}
	c.UpdatedAt = time.Now()
	r.s.clients[c.ID] = *c
	return nil
}

func (r *Clients) Delete(_ context.Context, id, userID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.clients[id]
	if !ok || c.UserID != userID {
		return domain.ErrNotFound
	}
	delete(r.s.clients, id)
	for sid, sess := range r.s.sessions {
		if sess.ClienteID == id {
			delete(r.s.sessions, sid)
		}
	}
	return nil
}

var _ domainClient.Repository = (*Clients)(nil)

// ======================================================
// SESSIONS
// ======================================================

type Sessions struct{ s *Store }

func (r *Sessions) Create(_ context.Context, sess *models.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return err
	}
	sess.ID = r.s.next()
	sess.CreatedAt = time.Now()
	sess.UpdatedAt = sess.CreatedAt
	r.s.sessions[sess.ID] = *sess
	return nil
}

func (r *Sessions) GetForUser(_ context.Context, id, userID uint) (*models.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sess, ok := r.s.sessions[id]
	if !ok || sess.UsuarioID != userID {
		return nil, domain.ErrNotFound
	}
	return &sess, nil
}

func (r *Sessions) Update(_ context.Context, sess *models.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return err
	}
	sess.UpdatedAt = time.Now()
	r.s.sessions[sess.ID] = *sess
	return nil
}

func (r *Sessions) Delete(_ context.Context, id, userID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sess, ok := r.s.sessions[id]
	if !ok || sess.UsuarioID != userID {
		return domain.ErrNotFound
	}
	delete(r.s.sessions, id)
	return nil
}

func (r *Sessions) List(_ context.Context, f domainSession.Filter) ([]models.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []models.Session
	for _, sess := range r.s.sessions {
		if sess.UsuarioID != f.UserID {
			continue
		}
		if f.ClientID != nil && sess.ClienteID != *f.ClientID {
			continue
		}
		if len(f.Statuses) > 0 && !hasStatus(f.Statuses, sess.Status) {
			continue
		}
		if f.From != nil && sess.DataAtendimento.Before(*f.From) {
			continue
		}
		if f.To != nil && sess.DataAtendimento.After(*f.To) {
			continue
		}
		if c, ok := r.s.clients[sess.ClienteID]; ok {
			sess.Cliente = &c
		}
		out = append(out, sess)
	}

	sort.Slice(out, func(i, j int) bool {
		if f.Descending {
			return out[i].DataAtendimento.After(out[j].DataAtendimento)
		}
		return out[i].DataAtendimento.Before(out[j].DataAtendimento)
	})
	return out, nil
}

func hasStatus(list []domainSession.Status, s string) bool {
	for _, st := range list {
		if string(st) == s {
			return true
		}
	}
	return false
}

func (r *Sessions) Aggregate(_ context.Context, q domainSession.AggregateQuery) ([]domainSession.StatusTotal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	loc := timezone.Location(q.Timezone)
	totals := map[string]float64{}

	for _, sess := range r.s.sessions {
		if sess.UsuarioID != q.UserID || sess.Status == models.SessionStatusCanceled {
			continue
		}
		t := sess.DataAtendimento.In(loc)
		if t.Year() != q.Year {
			continue
		}
		if (q.Period == domainSession.PeriodMonth || q.Period == domainSession.PeriodDay) && int(t.Month()) != q.Month {
			continue
		}
		if q.Period == domainSession.PeriodDay && t.Day() != q.Day {
			continue
		}

		if q.Metric == domainSession.MetricValue {
			totals[sess.Status] += sess.ValorSessao
		} else {
			totals[sess.Status]++
		}
	}

	out := make([]domainSession.StatusTotal, 0, len(totals))
	for status, total := range totals {
		out = append(out, domainSession.StatusTotal{Status: status, Total: total})
	}
	return out, nil
}

var _ domainSession.Repository = (*Sessions)(nil)

// ======================================================
// USERS
// ======================================================

type Users struct{ s *Store }

func (r *Users) Create(_ context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return err
	}
	u.ID = r.s.next()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.s.users[u.ID] = *u
	return nil
}

func (r *Users) find(match func(models.User) bool) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *Users) GetByID(_ context.Context, id uint) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.ID == id })
}

func (r *Users) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Email == email })
}

func (r *Users) GetByAuthID(_ context.Context, authID string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.AuthID != nil && *u.AuthID == authID })
}

func (r *Users) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

func (r *Users) mutate(id uint, fn func(*models.User)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return err
	}
	u, ok := r.s.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	fn(&u)
	u.UpdatedAt = time.Now()
	r.s.users[id] = u
	return nil
}

func (r *Users) SetAuthID(_ context.Context, id uint, authID string) error {
	return r.mutate(id, func(u *models.User) { u.AuthID = &authID })
}

func (r *Users) UpdatePassword(_ context.Context, id uint, hash string) error {
	return r.mutate(id, func(u *models.User) { u.Senha = hash })
}

func (r *Users) UpdatePhoto(_ context.Context, id uint, key string) error {
	return r.mutate(id, func(u *models.User) { u.Foto = key })
}

func (r *Users) UpdateProfile(_ context.Context, id uint, columns map[string]any, styles []models.Style) error {
	return r.mutate(id, func(u *models.User) {
		for col, v := range columns {
			s, _ := v.(string)
			switch col {
			case "nome":
				u.Nome = s
			case "sobrenome":
				u.Sobrenome = s
			case "cpf":
				u.CPF = s
			case "bio":
				u.Bio = s
			case "endereco":
				u.Endereco = s
			case "telefone":
				u.Telefone = s
			case "whatsapp":
				u.Whatsapp = s
			case "instagram":
				u.Instagram = s
			}
		}
		if styles != nil {
			u.Styles = append([]models.Style(nil), styles...)
		}
	})
}

func (r *Users) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return err
	}
	if _, ok := r.s.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.users, id)
	for k, c := range r.s.clients {
		if c.UserID == id {
			delete(r.s.clients, k)
		}
	}
	for k, sess := range r.s.sessions {
		if sess.UsuarioID == id {
			delete(r.s.sessions, k)
		}
	}
	for k, p := range r.s.photos {
		if p.UserID == id {
			delete(r.s.photos, k)
		}
	}
	for k, img := range r.s.images {
		if img.UserID == id {
			delete(r.s.images, k)
		}
	}
	return nil
}

var _ domainUser.Repository = (*Users)(nil)

// ======================================================
// STYLES
// ======================================================

type Styles struct{ s *Store }

func (r *Styles) Add(nome string) models.Style {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st := models.Style{ID: r.s.next(), Nome: nome}
	r.s.styles[st.ID] = st
	return st
}

func (r *Styles) List(_ context.Context) ([]models.Style, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]models.Style, 0, len(r.s.styles))
	for _, st := range r.s.styles {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nome < out[j].Nome })
	return out, nil
}

func (r *Styles) FindByIDs(_ context.Context, ids []uint) ([]models.Style, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Style
	for _, id := range ids {
		if st, ok := r.s.styles[id]; ok {
			out = append(out, st)
		}
	}
	return out, nil
}

var _ domainUser.StyleRepository = (*Styles)(nil)

// ======================================================
// PHOTOS / GENERATED IMAGES
// ======================================================

type Photos struct{ s *Store }

func (r *Photos) Create(_ context.Context, p *models.Photo) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return err
	}
	p.ID = r.s.next()
	p.CreatedAt = time.Now()
	r.s.photos[p.ID] = *p
	return nil
}

func (r *Photos) GetByID(_ context.Context, id uint) (*models.Photo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.photos[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *Photos) GetForUser(ctx context.Context, id, userID uint) (*models.Photo, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil || p.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (r *Photos) ListByUser(_ context.Context, userID uint) ([]models.Photo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Photo
	for _, p := range r.s.photos {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *Photos) Delete(_ context.Context, id, userID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.photos[id]
	if !ok || p.UserID != userID {
		return domain.ErrNotFound
	}
	delete(r.s.photos, id)
	return nil
}

var _ media.PhotoRepository = (*Photos)(nil)

type GeneratedImgs struct{ s *Store }

func (r *GeneratedImgs) Create(_ context.Context, img *models.GeneratedImage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return err
	}
	img.ID = r.s.next()
	img.CreatedAt = time.Now()
	r.s.images[img.ID] = *img
	return nil
}

func (r *GeneratedImgs) GetForUser(_ context.Context, id, userID uint) (*models.GeneratedImage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	img, ok := r.s.images[id]
	if !ok || img.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return &img, nil
}

func (r *GeneratedImgs) ListByUser(_ context.Context, userID uint) ([]models.GeneratedImage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.GeneratedImage
	for _, img := range r.s.images {
		if img.UserID == userID {
			out = append(out, img)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *GeneratedImgs) Delete(_ context.Context, id, userID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	img, ok := r.s.images[id]
	if !ok || img.UserID != userID {
		return domain.ErrNotFound
	}
	delete(r.s.images, id)
	return nil
}

var _ media.GeneratedImageRepository = (*GeneratedImgs)(nil)
