package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sage-labs/sage-cli/internal/core/domain"
)

func TestNewPatternStore(t *testing.T) {
	store := NewPatternStore()
	require.NotNil(t, store)
}

func TestPatternStore_SaveAndGet(t *testing.T) {
	store := NewPatternStore()
	ctx := context.Background()

	pattern := domain.Pattern{
		ID:       "pat-1",
		DomainID: "dom-1",
		Match:    "capital of France",
		Answer:   "Paris",
	}

	err := store.Save(ctx, pattern)
	require.NoError(t, err)

	got, err := store.Get(ctx, "pat-1")
	require.NoError(t, err)
	assert.Equal(t, "Paris", got.Answer)
}

func TestPatternStore_Get_NotFound(t *testing.T) {
	store := NewPatternStore()

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPatternStore_ListByDomain(t *testing.T) {
	store := NewPatternStore()
	ctx := context.Background()

	_ = store.Save(ctx, domain.Pattern{ID: "pat-2", DomainID: "dom-1"})
	_ = store.Save(ctx, domain.Pattern{ID: "pat-1", DomainID: "dom-1"})
	_ = store.Save(ctx, domain.Pattern{ID: "pat-3", DomainID: "dom-2"})

	patterns, err := store.ListByDomain(ctx, "dom-1")
	require.NoError(t, err)
	require.Len(t, patterns, 2)
	assert.Equal(t, "pat-1", patterns[0].ID)
	assert.Equal(t, "pat-2", patterns[1].ID)
}

func TestPatternStore_ListByDomain_Empty(t *testing.T) {
	store := NewPatternStore()

	patterns, err := store.ListByDomain(context.Background(), "dom-1")
	require.NoError(t, err)
	assert.Empty(t, patterns)
	assert.NotNil(t, patterns)
}

func TestPatternStore_Delete(t *testing.T) {
	store := NewPatternStore()
	ctx := context.Background()

	_ = store.Save(ctx, domain.Pattern{ID: "pat-1", DomainID: "dom-1"})

	err := store.Delete(ctx, "pat-1")
	require.NoError(t, err)

	_, err = store.Get(ctx, "pat-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPatternStore_DeleteByDomain(t *testing.T) {
	store := NewPatternStore()
	ctx := context.Background()

	_ = store.Save(ctx, domain.Pattern{ID: "pat-1", DomainID: "dom-1"})
	_ = store.Save(ctx, domain.Pattern{ID: "pat-2", DomainID: "dom-1"})
	_ = store.Save(ctx, domain.Pattern{ID: "pat-3", DomainID: "dom-2"})

	err := store.DeleteByDomain(ctx, "dom-1")
	require.NoError(t, err)

	patterns, err := store.ListByDomain(ctx, "dom-1")
	require.NoError(t, err)
	assert.Empty(t, patterns)

	remaining, err := store.ListByDomain(ctx, "dom-2")
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestPatternStore_IncrementUsage(t *testing.T) {
	store := NewPatternStore()
	ctx := context.Background()

	_ = store.Save(ctx, domain.Pattern{ID: "pat-1", DomainID: "dom-1"})

	require.NoError(t, store.IncrementUsage(ctx, "pat-1"))
	require.NoError(t, store.IncrementUsage(ctx, "pat-1"))

	got, err := store.Get(ctx, "pat-1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.UsageCount)
}

func TestPatternStore_IncrementUsage_NotFound(t *testing.T) {
	store := NewPatternStore()

	err := store.IncrementUsage(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPatternStore_Concurrency_IncrementUsage(t *testing.T) {
	store := NewPatternStore()
	ctx := context.Background()

	_ = store.Save(ctx, domain.Pattern{ID: "pat-1", DomainID: "dom-1"})

	var wg sync.WaitGroup
	numGoroutines := 100

	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			_ = store.IncrementUsage(ctx, "pat-1")
		}()
	}
	wg.Wait()

	got, err := store.Get(ctx, "pat-1")
	require.NoError(t, err)
	assert.Equal(t, numGoroutines, got.UsageCount)
}
