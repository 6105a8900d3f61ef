package credstore

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreCopiesValues(t *testing.T) {
	store := NewMemoryStore()

	value := []byte("original")
	require.NoError(t, store.Save("k", value))

	// Mutating the caller's slice must not change the stored entry
	value[0] = 'X'

	got, err := store.Load("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), got)

	// Mutating a loaded slice must not change the stored entry either
	got[0] = 'Y'

	again, err := store.Load("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), again)
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Save("shared", []byte("v")))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = store.Save("shared", []byte("v"))
				_, _ = store.Load("shared")
				_ = store.Delete("other")
			}
		}()
	}
	wg.Wait()
}
