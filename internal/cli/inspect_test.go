package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/LeJamon/goLibra/internal/core/protocol"
	"github.com/LeJamon/goLibra/internal/core/types"
	"github.com/LeJamon/goLibra/internal/crypto"
	"github.com/LeJamon/goLibra/internal/storage/statestore"
)

func writeRawDump(t *testing.T, name string, build func(d *statestore.Dump)) string {
	t.Helper()

	dump := statestore.NewDump()
	build(dump)

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, dump.Encode(f, statestore.FormatJSON, false))
	require.NoError(t, f.Close())
	return path
}

func TestInspectRoundTrip(t *testing.T) {
	var seed [crypto.SeedSize]byte
	batch, err := buildFixtures(crypto.NewKeyGen(seed), testOptions(3), zap.NewNop())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "state.cbor.lz4")
	_, err = writeDump(path, batch.Sets)
	require.NoError(t, err)

	report, err := inspectDump(path)
	require.NoError(t, err)

	assert.Equal(t, statestore.FormatCBOR, report.Format)
	assert.True(t, report.Compressed)
	assert.Equal(t, statestore.DumpVersion, report.Version)
	assert.Len(t, report.Entries, 9)
	assert.Zero(t, report.Failures)

	kinds := make(map[string]int)
	for _, e := range report.Entries {
		kinds[e.Kind]++
		assert.Empty(t, e.Error)
		assert.NotNil(t, e.Value)
		assert.Positive(t, e.Size)
	}
	assert.Equal(t, 3, kinds["account"])
	assert.Equal(t, 3, kinds["balance<LBR>"])
	assert.Equal(t, 3, kinds["event_generator"])
}

func TestInspectFlagsCorruptValues(t *testing.T) {
	addr := types.MustAddressFromHex("0xa550c18")
	ap := types.ResourceAccessPath(addr, protocol.AccountStructTag())

	path := writeRawDump(t, "bad.json", func(d *statestore.Dump) {
		// Truncated account resource: decoding must fail, not panic.
		d.Add(ap, []byte{0x01, 0x02})
	})

	report, err := inspectDump(path)
	require.NoError(t, err)
	require.Len(t, report.Entries, 1)
	assert.Equal(t, "account", report.Entries[0].Kind)
	assert.NotEmpty(t, report.Entries[0].Error)
	assert.Equal(t, 1, report.Failures)
}

func TestInspectUnknownResource(t *testing.T) {
	addr := types.MustAddressFromHex("0x42")
	tag := types.StructTag{Address: protocol.CoreCodeAddress, Module: "Custom", Name: "Thing"}
	ap := types.ResourceAccessPath(addr, tag)

	path := writeRawDump(t, "custom.json", func(d *statestore.Dump) {
		d.Add(ap, []byte{0xff})
	})

	report, err := inspectDump(path)
	require.NoError(t, err)
	require.Len(t, report.Entries, 1)
	assert.Equal(t, "unknown", report.Entries[0].Kind)
	assert.Equal(t, "ff", report.Entries[0].Value)
	assert.Zero(t, report.Failures)
}

func TestInspectBalanceCurrencies(t *testing.T) {
	var seed [crypto.SeedSize]byte
	opts := testOptions(1)
	opts.Currency = protocol.Coin1

	batch, err := buildFixtures(crypto.NewKeyGen(seed), opts, zap.NewNop())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "coin1.json")
	_, err = writeDump(path, batch.Sets)
	require.NoError(t, err)

	report, err := inspectDump(path)
	require.NoError(t, err)
	assert.Zero(t, report.Failures)

	kinds := make(map[string]int)
	for _, e := range report.Entries {
		kinds[e.Kind]++
	}
	assert.Equal(t, 1, kinds["balance<Coin1>"])
	assert.Zero(t, kinds["balance<LBR>"])
}
