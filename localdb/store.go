// Package localdb is the zero-dependency deployment mode: one JSON document
// on disk, rewritten in full on every mutation, serialized by a process
// mutex. Same contract as the Postgres store, weaker guarantees — which is
// exactly what the layers above are written against.
package localdb

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"Gin_postgres_redis_booking_tool/models"
	"Gin_postgres_redis_booking_tool/store"
)

type document struct {
	Config       *models.AppConfig    `json:"config"`
	Reservations []models.Reservation `json:"reservations"`
	Users        []models.User        `json:"users"`
	Credentials  []models.Credential  `json:"credentials"`
	NextCredID   uint                 `json:"nextCredId"`
}

type Store struct {
	mu   sync.Mutex
	path string
}

var _ store.Store = (*Store)(nil)

// Open loads the document at path, creating it with a default config when
// missing.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return s, s.save(&document{
			Config:     models.DefaultAppConfig(time.Now()),
			NextCredID: 1,
		})
	}
	_, err := s.load()
	return s, err
}

func (s *Store) load() (*document, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	var d document
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, err
	}
	if d.Config == nil {
		d.Config = models.DefaultAppConfig(time.Now())
	}
	if d.NextCredID == 0 {
		d.NextCredID = 1
	}
	return &d, nil
}

// save rewrites the whole collection: write a sibling temp file, then rename
// over the old one so readers never see a torn document.
func (s *Store) save(d *document) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return err
	}
	tmp := filepath.Join(filepath.Dir(s.path), "."+filepath.Base(s.path)+".tmp")
	if err := os.WriteFile(tmp, buf.Bytes(), 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Reservations

func (s *Store) InsertReservation(_ context.Context, r *models.Reservation) error {
	if err := store.ValidateNew(r); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.load()
	if err != nil {
		return err
	}
	d.Reservations = append(d.Reservations, *r)
	return s.save(d)
}

func (s *Store) GetReservation(_ context.Context, id string) (*models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range d.Reservations {
		if d.Reservations[i].ID == id {
			r := d.Reservations[i]
			return &r, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) UpdateReservationStatus(_ context.Context, id string, patch store.DecisionPatch) (*models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range d.Reservations {
		if d.Reservations[i].ID != id {
			continue
		}
		if d.Reservations[i].Status != patch.ExpectedStatus {
			return nil, store.ErrStatusConflict
		}
		decidedAt := patch.DecidedAt
		d.Reservations[i].Status = patch.Status
		d.Reservations[i].DecidedAt = &decidedAt
		d.Reservations[i].DecidedBy = patch.DecidedBy
		d.Reservations[i].DecisionNote = patch.DecisionNote
		if err := s.save(d); err != nil {
			return nil, err
		}
		r := d.Reservations[i]
		return &r, nil
	}
	return nil, store.ErrNotFound
}

func (s *Store) ReservationsByYear(_ context.Context, year int, status string) ([]models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make([]models.Reservation, 0)
	for _, r := range d.Reservations {
		if r.Year != year {
			continue
		}
		if status != "" && r.Status != status {
			continue
		}
		out = append(out, r)
	}
	if status == models.StatusApproved {
		sort.Slice(out, func(i, j int) bool {
			if out[i].Date != out[j].Date {
				return out[i].Date < out[j].Date
			}
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	} else {
		sort.Slice(out, func(i, j int) bool {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	}
	return out, nil
}

func (s *Store) ReservationsForEquipmentOnDate(_ context.Context, equipmentID, date string, year int) ([]models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make([]models.Reservation, 0)
	for _, r := range d.Reservations {
		if r.EquipmentID == equipmentID && r.Date == date && r.Year == year && r.Status == models.StatusApproved {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartTime != out[j].StartTime {
			return out[i].StartTime < out[j].StartTime
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// App config

func (s *Store) GetConfig(_ context.Context) (*models.AppConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.load()
	if err != nil {
		return nil, err
	}
	cfg := *d.Config
	return &cfg, nil
}

func (s *Store) AdvanceActiveYear(_ context.Context) (*models.AppConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.load()
	if err != nil {
		return nil, err
	}
	d.Config.ActiveYear++
	d.Config.UpdatedAt = time.Now().UTC()
	if err := s.save(d); err != nil {
		return nil, err
	}
	cfg := *d.Config
	return &cfg, nil
}

func (s *Store) MarkSetupDone(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.load()
	if err != nil {
		return err
	}
	d.Config.SetupDone = true
	d.Config.UpdatedAt = time.Now().UTC()
	return s.save(d)
}

// Users

func (s *Store) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.load()
	if err != nil {
		return err
	}
	for _, ex := range d.Users {
		if ex.Email == u.Email {
			return store.ErrEmailTaken
		}
	}
	d.Users = append(d.Users, *u)
	return s.save(d)
}

func (s *Store) FindUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range d.Users {
		if d.Users[i].ID == id {
			u := d.Users[i]
			return &u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (s *Store) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range d.Users {
		if d.Users[i].Email == email {
			u := d.Users[i]
			return &u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (s *Store) TouchUserLogin(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.load()
	if err != nil {
		return err
	}
	for i := range d.Users {
		if d.Users[i].ID == id {
			now := time.Now().UTC()
			d.Users[i].LastLoginAt = &now
			d.Users[i].LoginCount++
			return s.save(d)
		}
	}
	return store.ErrUserNotFound
}

// Credentials

func (s *Store) AddCredential(_ context.Context, c *models.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.load()
	if err != nil {
		return err
	}
	c.ID = d.NextCredID
	d.NextCredID++
	c.CreatedAt = time.Now().UTC()
	d.Credentials = append(d.Credentials, *c)
	return s.save(d)
}

func (s *Store) LoadUserCredentials(_ context.Context, userID string) ([]models.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make([]models.Credential, 0)
	for _, c := range d.Credentials {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Store) UpdateCredentialCounter(_ context.Context, credID []byte, signCount uint32, cloneWarn bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.load()
	if err != nil {
		return err
	}
	for i := range d.Credentials {
		if bytes.Equal(d.Credentials[i].CredentialID, credID) {
			now := time.Now().UTC()
			d.Credentials[i].SignCount = signCount
			d.Credentials[i].CloneWarning = cloneWarn
			d.Credentials[i].LastUsedAt = &now
			return s.save(d)
		}
	}
	return store.ErrUserNotFound
}

func (s *Store) FindUserByCredentialID(ctx context.Context, credID []byte) (*models.User, *models.Credential, error) {
	s.mu.Lock()
	d, err := s.load()
	if err != nil {
		s.mu.Unlock()
		return nil, nil, err
	}
	var cred *models.Credential
	for i := range d.Credentials {
		if bytes.Equal(d.Credentials[i].CredentialID, credID) {
			c := d.Credentials[i]
			cred = &c
			break
		}
	}
	s.mu.Unlock()
	if cred == nil {
		return nil, nil, store.ErrUserNotFound
	}
	u, err := s.FindUserByID(ctx, cred.UserID)
	if err != nil {
		return nil, nil, err
	}
	return u, cred, nil
}
