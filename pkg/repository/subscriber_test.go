package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybernews-agent/cybernews/pkg/notify"
)

func TestSubscriberRepository(t *testing.T) {
	ctx := context.Background()
	repo := setupTestDB(t, 0).Subscriber

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	emails, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, emails)

	added, err := repo.Add(ctx, "  Bob@Example.com ")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = repo.Add(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.False(t, added, "duplicate after normalization")

	added, err = repo.Add(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, added)

	emails, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice@example.com", "bob@example.com"}, emails)

	removed, err := repo.Remove(ctx, "BOB@example.com")
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = repo.Remove(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, removed)

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSubscriberRepository_EmptyEmail(t *testing.T) {
	repo := setupTestDB(t, 0).Subscriber
	added, err := repo.Add(context.Background(), "   ")
	require.ErrorIs(t, err, notify.ErrInvalidEmail)
	assert.False(t, added)
}

func TestSubscriberRepository_InvalidEmail(t *testing.T) {
	ctx := context.Background()
	repo := setupTestDB(t, 0).Subscriber
	added, err := repo.Add(ctx, "not-an-email")
	require.ErrorIs(t, err, notify.ErrInvalidEmail)
	assert.False(t, added)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestSubscriberRepository_Concurrent(t *testing.T) {
	ctx := context.Background()
	repo := setupTestDB(t, 0).Subscriber

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Add(ctx, fmt.Sprintf("user%02d@example.com", i))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20, count)
}

func TestSubscriberRepository_WithNotifier(t *testing.T) {
	ctx := context.Background()
	n := notify.NewNotifier(setupTestDB(t, 0).Subscriber, nil, nil, nil)

	added, err := n.Subscribe(ctx, "reader@example.com")
	require.NoError(t, err)
	assert.True(t, added)

	_, err = n.Subscribe(ctx, "not-an-email")
	require.ErrorIs(t, err, notify.ErrInvalidEmail)

	assert.Equal(t, 1, n.Status(ctx).SubscriberCount)
}
