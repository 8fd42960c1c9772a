package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"DOIT_BACK-END/internal/common"
	"DOIT_BACK-END/internal/models"
)

// MemoryStore keeps users and notes in process memory. It backs the tests and
// the `serve --in-memory` mode; deleting a user drops that user's notes.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]models.User
	notes map[uuid.UUID]models.Note
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[uuid.UUID]models.User),
		notes: make(map[uuid.UUID]models.Note),
	}
}

func (s *MemoryStore) Users() UserRepository { return memoryUsers{s} }
func (s *MemoryStore) Notes() NoteRepository { return memoryNotes{s} }

// Ping lets the store stand in for a database in readiness checks.
func (s *MemoryStore) Ping(context.Context) error { return nil }

type memoryUsers struct{ s *MemoryStore }

func (m memoryUsers) Create(_ context.Context, user *models.User) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if m.emailTaken(user.Email, uuid.Nil) {
		return common.ErrDuplicateEmail
	}
	m.s.users[user.ID] = *user
	return nil
}

func (m memoryUsers) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	u, ok := m.s.users[id]
	if !ok {
		return nil, common.ErrUserNotFound
	}
	return &u, nil
}

func (m memoryUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	for _, u := range m.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, common.ErrUserNotFound
}

func (m memoryUsers) ExistsByEmail(_ context.Context, email string) (bool, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	return m.emailTaken(email, uuid.Nil), nil
}

func (m memoryUsers) Update(_ context.Context, id uuid.UUID, upd models.UserUpdate) (*models.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	u, ok := m.s.users[id]
	if !ok {
		return nil, common.ErrUserNotFound
	}
	if m.emailTaken(upd.Email, id) {
		return nil, common.ErrDuplicateEmail
	}

	u.Name = upd.Name
	u.Email = upd.Email
	u.UpdatedAt = upd.UpdatedAt
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	m.s.users[id] = u
	return &u, nil
}

func (m memoryUsers) Delete(_ context.Context, id uuid.UUID) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if _, ok := m.s.users[id]; !ok {
		return common.ErrUserNotFound
	}
	delete(m.s.users, id)
	for nid, n := range m.s.notes {
		if n.UserID == id {
			delete(m.s.notes, nid)
		}
	}
	return nil
}

// caller holds the lock
func (m memoryUsers) emailTaken(email string, except uuid.UUID) bool {
	for id, u := range m.s.users {
		if id != except && u.Email == email {
			return true
		}
	}
	return false
}

type memoryNotes struct{ s *MemoryStore }

func (m memoryNotes) ListByOwner(_ context.Context, userID uuid.UUID) ([]models.Note, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	notes := []models.Note{}
	for _, n := range m.s.notes {
		if n.UserID == userID {
			notes = append(notes, n)
		}
	}
	sort.Slice(notes, func(i, j int) bool {
		if notes[i].CreatedAt.Equal(notes[j].CreatedAt) {
			return notes[i].ID.String() < notes[j].ID.String()
		}
		return notes[i].CreatedAt.Before(notes[j].CreatedAt)
	})
	return notes, nil
}

func (m memoryNotes) GetByIDAndOwner(_ context.Context, id, userID uuid.UUID) (*models.Note, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	n, ok := m.s.notes[id]
	if !ok || n.UserID != userID {
		return nil, common.ErrNoteNotFound
	}
	return &n, nil
}

func (m memoryNotes) Create(_ context.Context, note *models.Note) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if _, ok := m.s.users[note.UserID]; !ok {
		return common.ErrUserNotFound
	}
	m.s.notes[note.ID] = *note
	return nil
}

func (m memoryNotes) Update(_ context.Context, id, userID uuid.UUID, title, description string, at time.Time) (*models.Note, error) {
	return m.mutate(id, userID, func(n *models.Note) {
		n.Title = title
		n.Description = description
		n.UpdatedAt = at
	})
}

func (m memoryNotes) SetCompleted(_ context.Context, id, userID uuid.UUID, completed bool, at time.Time) (*models.Note, error) {
	return m.mutate(id, userID, func(n *models.Note) {
		n.IsCompleted = completed
		n.CompletedAt = nil
		if completed {
			t := at
			n.CompletedAt = &t
		}
		n.UpdatedAt = at
	})
}

func (m memoryNotes) mutate(id, userID uuid.UUID, fn func(*models.Note)) (*models.Note, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	n, ok := m.s.notes[id]
	if !ok || n.UserID != userID {
		return nil, common.ErrNoteNotFound
	}
	fn(&n)
	m.s.notes[id] = n
	return &n, nil
}

func (m memoryNotes) Delete(_ context.Context, id, userID uuid.UUID) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	n, ok := m.s.notes[id]
	if !ok || n.UserID != userID {
		return common.ErrNoteNotFound
	}
	delete(m.s.notes, id)
	return nil
}
