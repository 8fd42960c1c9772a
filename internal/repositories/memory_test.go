package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DOIT_BACK-END/internal/common"
	"DOIT_BACK-END/internal/models"
)

func TestMemoryUsers_UniqueEmail(t *testing.T) {
	ctx := context.Background()
	users := NewMemoryStore().Users()

	a := sampleUser()
	require.NoError(t, users.Create(ctx, &a))

	b := sampleUser()
	assert.ErrorIs(t, users.Create(ctx, &b), common.ErrDuplicateEmail)

	b.Email = "bob@x.com"
	require.NoError(t, users.Create(ctx, &b))

	_, err := users.Update(ctx, b.ID, models.UserUpdate{Name: "Bob", Email: a.Email})
	assert.ErrorIs(t, err, common.ErrDuplicateEmail)

	// keeping your own address is not a conflict
	_, err = users.Update(ctx, a.ID, models.UserUpdate{Name: "Ann B.", Email: a.Email})
	assert.NoError(t, err)
}

func TestMemoryUsers_UpdatePasswordOptional(t *testing.T) {
	ctx := context.Background()
	users := NewMemoryStore().Users()
	u := sampleUser()
	require.NoError(t, users.Create(ctx, &u))

	got, err := users.Update(ctx, u.ID, models.UserUpdate{Name: "Ann", Email: u.Email})
	require.NoError(t, err)
	assert.Equal(t, "hash", got.PasswordHash)

	h := "other"
	got, err = users.Update(ctx, u.ID, models.UserUpdate{Name: "Ann", Email: u.Email, PasswordHash: &h})
	require.NoError(t, err)
	assert.Equal(t, "other", got.PasswordHash)
}

func TestMemoryStore_DeleteUserCascades(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	u := sampleUser()
	require.NoError(t, store.Users().Create(ctx, &u))

	n := sampleNote(u.ID)
	require.NoError(t, store.Notes().Create(ctx, &n))

	require.NoError(t, store.Users().Delete(ctx, u.ID))

	_, err := store.Notes().GetByIDAndOwner(ctx, n.ID, u.ID)
	assert.ErrorIs(t, err, common.ErrNoteNotFound)
	assert.ErrorIs(t, store.Users().Delete(ctx, u.ID), common.ErrUserNotFound)
}

func TestMemoryNotes_OwnershipAndOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	ann, bob := sampleUser(), sampleUser()
	bob.Email = "bob@x.com"
	require.NoError(t, store.Users().Create(ctx, &ann))
	require.NoError(t, store.Users().Create(ctx, &bob))

	first := sampleNote(ann.ID)
	second := sampleNote(ann.ID)
	second.CreatedAt = first.CreatedAt.Add(time.Minute)
	require.NoError(t, store.Notes().Create(ctx, &second))
	require.NoError(t, store.Notes().Create(ctx, &first))

	list, err := store.Notes().ListByOwner(ctx, ann.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)

	empty, err := store.Notes().ListByOwner(ctx, bob.ID)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = store.Notes().Update(ctx, first.ID, bob.ID, "x", "y", time.Now())
	assert.ErrorIs(t, err, common.ErrNoteNotFound)
	assert.ErrorIs(t, store.Notes().Delete(ctx, first.ID, bob.ID), common.ErrNoteNotFound)
}

func TestMemoryNotes_CreateRequiresOwner(t *testing.T) {
	n := sampleNote(uuid.New())
	err := NewMemoryStore().Notes().Create(context.Background(), &n)
	assert.ErrorIs(t, err, common.ErrUserNotFound)
}

func TestMemoryNotes_SetCompleted(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	u := sampleUser()
	require.NoError(t, store.Users().Create(ctx, &u))
	n := sampleNote(u.ID)
	require.NoError(t, store.Notes().Create(ctx, &n))

	at := time.Now().UTC()
	done, err := store.Notes().SetCompleted(ctx, n.ID, u.ID, true, at)
	require.NoError(t, err)
	assert.True(t, done.IsCompleted)
	require.NotNil(t, done.CompletedAt)
	assert.Equal(t, at, *done.CompletedAt)

	undone, err := store.Notes().SetCompleted(ctx, n.ID, u.ID, false, at.Add(time.Second))
	require.NoError(t, err)
	assert.False(t, undone.IsCompleted)
	assert.Nil(t, undone.CompletedAt)
}

func TestMemoryNotes_SetCompletedRepeated(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	u := sampleUser()
	require.NoError(t, store.Users().Create(ctx, &u))
	n := sampleNote(u.ID)
	require.NoError(t, store.Notes().Create(ctx, &n))

	first := time.Now().UTC()
	_, err := store.Notes().SetCompleted(ctx, n.ID, u.ID, true, first)
	require.NoError(t, err)

	second := first.Add(time.Minute)
	again, err := store.Notes().SetCompleted(ctx, n.ID, u.ID, true, second)
	require.NoError(t, err)
	assert.True(t, again.IsCompleted)
	require.NotNil(t, again.CompletedAt)
	assert.Equal(t, second, *again.CompletedAt)

	for i := 0; i < 2; i++ {
		undone, err := store.Notes().SetCompleted(ctx, n.ID, u.ID, false, second.Add(time.Minute))
		require.NoError(t, err)
		assert.False(t, undone.IsCompleted)
		assert.Nil(t, undone.CompletedAt)
	}
}
