package session

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/numbergenie/internal/db"
	"github.com/robalobadob/numbergenie/internal/game"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	conn, err := db.OpenMigrated(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": NewSQLiteStore(conn),
	}
}

func sample() *game.Session {
	prev := 42
	return &game.Session{
		Answer: 57, Min: 1, Max: 100,
		GuessCount: 3, DuplicateCount: 1, SteamSoundCount: 4,
		Hint: game.HintHigher, PreviousGuess: &prev,
		LastResponse: json.RawMessage(`{"blocks":[[{"display":"hi","speech":"hi"}]],"suggestions":["50"]}`),
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			want := sample()
			require.NoError(t, st.Save(ctx, "conv-1", want))

			got, err := st.Get(ctx, "conv-1")
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestStoreGetMissing(t *testing.T) {
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := st.Get(context.Background(), "nope")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			s := sample()
			require.NoError(t, st.Save(ctx, "c", s))
			s.Answer = 1
			*s.PreviousGuess = 99

			got, err := st.Get(ctx, "c")
			require.NoError(t, err)
			assert.Equal(t, 57, got.Answer)
			assert.Equal(t, 42, *got.PreviousGuess)

			got.GuessCount = 50
			again, err := st.Get(ctx, "c")
			require.NoError(t, err)
			assert.Equal(t, 3, again.GuessCount)
		})
	}
}

func TestStoreOverwriteAndDelete(t *testing.T) {
	ctx := context.Background()
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			s := sample()
			require.NoError(t, st.Save(ctx, "c", s))
			s.PreviousGuess = nil
			s.Hint = game.HintNone
			require.NoError(t, st.Save(ctx, "c", s))

			got, err := st.Get(ctx, "c")
			require.NoError(t, err)
			assert.Nil(t, got.PreviousGuess)
			assert.Equal(t, game.HintNone, got.Hint)

			require.NoError(t, st.Delete(ctx, "c"))
			require.NoError(t, st.Delete(ctx, "c"))
			_, err = st.Get(ctx, "c")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStoreRejectsBadInput(t *testing.T) {
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, st.Save(context.Background(), "", sample()))
			assert.Error(t, st.Save(context.Background(), "c", nil))
		})
	}
}

func TestMemoryStoreConcurrentSessions(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("conv-%d", i)
			s := &game.Session{Answer: i + 1, Min: 1, Max: 100}
			assert.NoError(t, st.Save(ctx, id, s))
			got, err := st.Get(ctx, id)
			if assert.NoError(t, err) {
				assert.Equal(t, i+1, got.Answer)
			}
		}(i)
	}
	wg.Wait()
}
