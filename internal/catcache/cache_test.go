package catcache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wraps/internal/model"
)

func TestCache(t *testing.T) {
	t.Run("basic operations", func(t *testing.T) {
		cache := New()

		assert.False(t, cache.Has("widget"))
		_, found := cache.Get("widget")
		assert.False(t, found)

		cache.Set("widget", model.CategoryElectronics)
		assert.True(t, cache.Has("widget"))

		category, found := cache.Get("widget")
		require.True(t, found)
		assert.Equal(t, model.CategoryElectronics, category)

		assert.Equal(t, 1, cache.Size())

		cache.Clear()
		assert.Equal(t, 0, cache.Size())
		assert.False(t, cache.Has("widget"))
	})

	t.Run("last write wins", func(t *testing.T) {
		cache := New()

		cache.Set("widget", model.CategoryElectronics)
		cache.Set("widget", model.CategoryAutomotive)

		category, found := cache.Get("widget")
		require.True(t, found)
		assert.Equal(t, model.CategoryAutomotive, category)
		assert.Equal(t, 1, cache.Size())
	})

	t.Run("set many", func(t *testing.T) {
		cache := New()
		cache.SetMany(map[string]model.Category{
			"widget":   model.CategoryElectronics,
			"gizmo":    model.CategoryOther,
			"sprocket": model.CategoryHousehold,
		})

		assert.Equal(t, 3, cache.Size())
		category, found := cache.Get("gizmo")
		require.True(t, found)
		assert.Equal(t, model.CategoryOther, category)
	})

	t.Run("all returns a copy", func(t *testing.T) {
		cache := New()
		cache.Set("widget", model.CategoryElectronics)

		all := cache.All()
		all["widget"] = model.CategoryOther

		category, _ := cache.Get("widget")
		assert.Equal(t, model.CategoryElectronics, category)
	})

	t.Run("concurrent access", func(t *testing.T) {
		cache := New()

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					cache.Set("concurrent", model.CategoryElectronics)
					_, _ = cache.Get("concurrent")
					_ = cache.Has("concurrent")
					_ = cache.Size()
				}
			}()
		}
		wg.Wait()

		category, found := cache.Get("concurrent")
		require.True(t, found)
		assert.Equal(t, model.CategoryElectronics, category)
	})
}
