package capability

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader(t *testing.T) {
	t.Run("constructs once and memoizes the handle", func(t *testing.T) {
		l := NewLoader()
		var builds int32

		build := func() (any, error) {
			atomic.AddInt32(&builds, 1)
			return "handle", nil
		}

		h1, err := l.Load("geocoder", build)
		require.NoError(t, err)
		h2, err := l.Load("geocoder", build)
		require.NoError(t, err)

		assert.Equal(t, "handle", h1)
		assert.Equal(t, h1, h2)
		assert.Equal(t, int32(1), atomic.LoadInt32(&builds))
		assert.True(t, l.Loaded("geocoder"))
	})

	t.Run("concurrent first loads share one construction", func(t *testing.T) {
		l := NewLoader()
		var builds int32

		var wg sync.WaitGroup
		for i := 0; i < 32; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				h, err := l.Load("store", func() (any, error) {
					atomic.AddInt32(&builds, 1)
					return 42, nil
				})
				assert.NoError(t, err)
				assert.Equal(t, 42, h)
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), atomic.LoadInt32(&builds))
	})

	t.Run("a failed construction stays failed", func(t *testing.T) {
		l := NewLoader()
		boom := errors.New("no credentials")
		var builds int32

		build := func() (any, error) {
			atomic.AddInt32(&builds, 1)
			return nil, boom
		}

		_, first := l.Load("firestore", build)
		require.Error(t, first)
		_, second := l.Load("firestore", build)
		require.Error(t, second)

		assert.Equal(t, int32(1), atomic.LoadInt32(&builds), "failure must be cached, not retried")
		assert.False(t, l.Loaded("firestore"))

		// Cached and fresh callers read the identical failure.
		assert.Equal(t, first.Error(), second.Error())
		assert.ErrorIs(t, second, boom)
		assert.Contains(t, second.Error(), "capability firestore unavailable")
	})

	t.Run("reset allows a rebuild", func(t *testing.T) {
		l := NewLoader()
		var builds int32

		build := func() (any, error) {
			atomic.AddInt32(&builds, 1)
			return "ok", nil
		}

		_, err := l.Load("geocoder", build)
		require.NoError(t, err)
		l.Reset("geocoder")
		_, err = l.Load("geocoder", build)
		require.NoError(t, err)

		assert.Equal(t, int32(2), atomic.LoadInt32(&builds))
	})

	t.Run("ids are independent", func(t *testing.T) {
		l := NewLoader()
		_, err := l.Load("a", func() (any, error) { return 1, nil })
		require.NoError(t, err)
		_, err = l.Load("b", func() (any, error) { return nil, errors.New("down") })
		require.Error(t, err)

		assert.True(t, l.Loaded("a"))
		assert.False(t, l.Loaded("b"))
	})
}
