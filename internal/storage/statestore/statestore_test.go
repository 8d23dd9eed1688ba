package statestore

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testBackends enumerates every registered backend with a hermetic
// configuration. Pebble has no in-memory form, so it gets a temp dir.
func testBackends(t *testing.T) []struct {
	name string
	make func(t *testing.T) Backend
} {
	t.Helper()
	return []struct {
		name string
		make func(t *testing.T) Backend
	}{
		{"memory", func(t *testing.T) Backend {
			return NewMemoryBackend()
		}},
		{"leveldb", func(t *testing.T) Backend {
			b, err := NewLevelBackend(&Config{Backend: "leveldb", Path: MemoryPath})
			require.NoError(t, err)
			return b
		}},
		{"sqlite", func(t *testing.T) Backend {
			b, err := NewSQLiteBackend(&Config{Backend: "sqlite", Path: MemoryPath})
			require.NoError(t, err)
			return b
		}},
		{"pebble", func(t *testing.T) Backend {
			b, err := NewPebbleBackend(&Config{Backend: "pebble", Path: filepath.Join(t.TempDir(), "pebble")})
			require.NoError(t, err)
			return b
		}},
	}
}

func TestBackendConformance(t *testing.T) {
	for _, tc := range testBackends(t) {
		t.Run(tc.name, func(t *testing.T) {
			b := tc.make(t)
			require.NoError(t, b.Open(true))
			defer b.Close()
			require.True(t, b.IsOpen())

			// Empty store.
			found, st := b.Has([]byte("missing"))
			require.Equal(t, OK, st)
			assert.False(t, found)

			_, st = b.Get([]byte("missing"))
			assert.Equal(t, NotFound, st)

			// Batch of puts, including an overwrite within the batch.
			var batch Batch
			batch.Put([]byte("bbb"), []byte{0x02})
			batch.Put([]byte("aaa"), []byte{0x01})
			batch.Put([]byte("ccc"), []byte{0x03})
			batch.Put([]byte("aaa"), []byte{0x11})
			require.Equal(t, OK, b.Apply(batch))

			value, st := b.Get([]byte("aaa"))
			require.Equal(t, OK, st)
			assert.Equal(t, []byte{0x11}, value, "later op in the batch wins")

			found, st = b.Has([]byte("bbb"))
			require.Equal(t, OK, st)
			assert.True(t, found)

			// Iteration in ascending key order.
			var keys []string
			err := b.ForEach(func(key, value []byte) error {
				keys = append(keys, string(key))
				return nil
			})
			require.NoError(t, err)
			assert.Equal(t, []string{"aaa", "bbb", "ccc"}, keys)

			// Deletion, including a no-op delete of an absent key.
			var del Batch
			del.Delete([]byte("bbb"))
			del.Delete([]byte("never-stored"))
			require.Equal(t, OK, b.Apply(del))

			_, st = b.Get([]byte("bbb"))
			assert.Equal(t, NotFound, st)

			require.Equal(t, OK, b.Sync())

			// Closed backends refuse everything.
			require.NoError(t, b.Close())
			assert.False(t, b.IsOpen())

			_, st = b.Get([]byte("aaa"))
			assert.Equal(t, BackendClosed, st)
			_, st = b.Has([]byte("aaa"))
			assert.Equal(t, BackendClosed, st)
			assert.Equal(t, BackendClosed, b.Apply(Batch{}))
			assert.Equal(t, BackendClosed, b.Sync())
			assert.ErrorIs(t, b.ForEach(func(_, _ []byte) error { return nil }), ErrClosed)
		})
	}
}

func TestBackendDoubleOpen(t *testing.T) {
	b := NewMemoryBackend()
	require.NoError(t, b.Open(true))
	defer b.Close()

	assert.Error(t, b.Open(true))
}

func TestBackendForEachStopsOnError(t *testing.T) {
	b := NewMemoryBackend()
	require.NoError(t, b.Open(true))
	defer b.Close()

	var batch Batch
	batch.Put([]byte("a"), []byte{1})
	batch.Put([]byte("b"), []byte{2})
	require.Equal(t, OK, b.Apply(batch))

	boom := errors.New("boom")
	visited := 0
	err := b.ForEach(func(_, _ []byte) error {
		visited++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, visited)
}

func TestMemoryBackendCopiesValues(t *testing.T) {
	b := NewMemoryBackend()
	require.NoError(t, b.Open(true))
	defer b.Close()

	value := []byte{0xaa, 0xbb}
	var batch Batch
	batch.Put([]byte("k"), value)
	require.Equal(t, OK, b.Apply(batch))

	// Mutating the caller's slice must not reach stored state.
	value[0] = 0x00

	got, st := b.Get([]byte("k"))
	require.Equal(t, OK, st)
	assert.Equal(t, []byte{0xaa, 0xbb}, got)

	// Mutating a returned slice must not reach stored state either.
	got[0] = 0x00
	again, st := b.Get([]byte("k"))
	require.Equal(t, OK, st)
	assert.Equal(t, []byte{0xaa, 0xbb}, again)
}

func TestRegistry(t *testing.T) {
	names := AvailableBackends()
	assert.Equal(t, []string{"leveldb", "memory", "pebble", "sqlite"}, names)

	for _, name := range names {
		assert.True(t, IsBackendAvailable(name))
	}
	assert.False(t, IsBackendAvailable("bolt"))

	_, err := NewBackend("bolt", DefaultConfig())
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestFactoryPathValidation(t *testing.T) {
	for _, name := range []string{"leveldb", "pebble", "sqlite"} {
		t.Run(name, func(t *testing.T) {
			_, err := NewBackend(name, &Config{Backend: name})
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	err := (&Config{}).Validate()
	assert.ErrorIs(t, err, ErrInvalidConfig)

	err = (&Config{Backend: "memory", CacheSize: -1}).Validate()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestStatusStringAndErr(t *testing.T) {
	tests := []struct {
		status Status
		str    string
		err    error
	}{
		{OK, "OK", nil},
		{NotFound, "NotFound", ErrNotFound},
		{DataCorrupt, "DataCorrupt", ErrDataCorrupt},
		{BackendClosed, "BackendClosed", ErrClosed},
		{BackendError, "BackendError", ErrBackend},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.str, tc.status.String())
		if tc.err == nil {
			assert.NoError(t, tc.status.Err())
		} else {
			assert.ErrorIs(t, tc.status.Err(), tc.err)
		}
	}

	assert.Equal(t, "Status(42)", Status(42).String())
	assert.ErrorIs(t, Status(42).Err(), ErrBackend)
}

func TestBatchOps(t *testing.T) {
	var batch Batch
	assert.Equal(t, 0, batch.Len())

	batch.Put([]byte("k1"), []byte("v1"))
	batch.Delete([]byte("k2"))
	require.Equal(t, 2, batch.Len())

	ops := batch.Ops()
	assert.Equal(t, BatchOp{Key: []byte("k1"), Value: []byte("v1")}, ops[0])
	assert.Equal(t, BatchOp{Key: []byte("k2"), Delete: true}, ops[1])
}
