package repository

import (
	"context"
	"testing"

	"travelbuddy/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuddyRepository_GetBuddiesBothDirections(t *testing.T) {
	db := newTestDB(t)
	repo := NewBuddyRepository(db)
	ctx := context.Background()

	alice := &models.User{Name: "Alice", Email: "alice@example.com", Password: "x"}
	bob := &models.User{Name: "Bob", Email: "bob@example.com", Password: "x"}
	carol := &models.User{Name: "Carol", Email: "carol@example.com", Password: "x"}
	for _, u := range []*models.User{alice, bob, carol} {
		require.NoError(t, db.Create(u).Error)
	}

	// Alice requested Bob; Carol requested Alice. Both accepted.
	require.NoError(t, repo.Create(ctx, &models.BuddyRequest{
		RequesterID: alice.ID, ReceiverID: bob.ID, Status: models.BuddyRequestStatusAccepted,
	}))
	require.NoError(t, repo.Create(ctx, &models.BuddyRequest{
		RequesterID: carol.ID, ReceiverID: alice.ID, Status: models.BuddyRequestStatusAccepted,
	}))
	// Pending requests must not count as buddies.
	require.NoError(t, repo.Create(ctx, &models.BuddyRequest{
		RequesterID: bob.ID, ReceiverID: carol.ID, Status: models.BuddyRequestStatusPending,
	}))

	buddies, err := repo.GetBuddies(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, buddies, 2)

	names := []string{buddies[0].Name, buddies[1].Name}
	assert.ElementsMatch(t, []string{"Bob", "Carol"}, names)

	bobBuddies, err := repo.GetBuddies(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, bobBuddies, 1)
	assert.Equal(t, "Alice", bobBuddies[0].Name)
}

func TestBuddyRepository_GetRequestBetweenUsers(t *testing.T) {
	db := newTestDB(t)
	repo := NewBuddyRepository(db)
	ctx := context.Background()

	alice := &models.User{Name: "Alice", Email: "alice@example.com", Password: "x"}
	bob := &models.User{Name: "Bob", Email: "bob@example.com", Password: "x"}
	for _, u := range []*models.User{alice, bob} {
		require.NoError(t, db.Create(u).Error)
	}

	require.NoError(t, repo.Create(ctx, &models.BuddyRequest{
		RequesterID: alice.ID, ReceiverID: bob.ID, Status: models.BuddyRequestStatusPending,
	}))

	// Found regardless of argument order.
	forward, err := repo.GetRequestBetweenUsers(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.NotNil(t, forward)

	reverse, err := repo.GetRequestBetweenUsers(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, reverse)
	assert.Equal(t, forward.ID, reverse.ID)

	none, err := repo.GetRequestBetweenUsers(ctx, alice.ID, 9999)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestBuddyRepository_PendingSplit(t *testing.T) {
	db := newTestDB(t)
	repo := NewBuddyRepository(db)
	ctx := context.Background()

	alice := &models.User{Name: "Alice", Email: "alice@example.com", Password: "x"}
	bob := &models.User{Name: "Bob", Email: "bob@example.com", Password: "x"}
	for _, u := range []*models.User{alice, bob} {
		require.NoError(t, db.Create(u).Error)
	}

	require.NoError(t, repo.Create(ctx, &models.BuddyRequest{
		RequesterID: alice.ID, ReceiverID: bob.ID, Status: models.BuddyRequestStatusPending,
	}))

	incoming, err := repo.GetPendingIncoming(ctx, bob.ID)
	require.NoError(t, err)
	assert.Len(t, incoming, 1)

	outgoing, err := repo.GetPendingOutgoing(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, outgoing)

	outgoing, err = repo.GetPendingOutgoing(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, outgoing, 1)
}

func TestBuddyRepository_DuplicateRequestConflict(t *testing.T) {
	db := newTestDB(t)
	repo := NewBuddyRepository(db)
	ctx := context.Background()

	alice := &models.User{Name: "Alice", Email: "alice@example.com", Password: "x"}
	bob := &models.User{Name: "Bob", Email: "bob@example.com", Password: "x"}
	for _, u := range []*models.User{alice, bob} {
		require.NoError(t, db.Create(u).Error)
	}

	request := &models.BuddyRequest{RequesterID: alice.ID, ReceiverID: bob.ID, Status: models.BuddyRequestStatusPending}
	require.NoError(t, repo.Create(ctx, request))

	err := repo.Create(ctx, &models.BuddyRequest{
		RequesterID: alice.ID, ReceiverID: bob.ID, Status: models.BuddyRequestStatusPending,
	})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
}
