package statestore

import (
	"encoding/hex"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pierrec/lz4"
	"github.com/ugorji/go/codec"

	"github.com/LeJamon/goLibra/internal/core/types"
)

// DumpVersion is the current dump schema version.
const DumpVersion uint32 = 1

// Format selects the dump wire encoding.
type Format int

const (
	// FormatJSON encodes dumps as JSON
	FormatJSON Format = iota
	// FormatCBOR encodes dumps as CBOR
	FormatCBOR
)

// String returns the string representation of Format.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatCBOR:
		return "cbor"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat parses a format name as used in config and CLI flags.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "cbor":
		return FormatCBOR, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatForPath derives the format and compression from a file name:
// ".json" or ".cbor", with a trailing ".lz4" for compressed dumps.
func FormatForPath(path string) (Format, bool, error) {
	base := path
	compressed := false
	if strings.HasSuffix(base, ".lz4") {
		compressed = true
		base = strings.TrimSuffix(base, ".lz4")
	}

	switch filepath.Ext(base) {
	case ".json":
		return FormatJSON, compressed, nil
	case ".cbor":
		return FormatCBOR, compressed, nil
	}
	return 0, false, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

func (f Format) handle() (codec.Handle, error) {
	switch f {
	case FormatJSON:
		h := new(codec.JsonHandle)
		h.Canonical = true
		return h, nil
	case FormatCBOR:
		h := new(codec.CborHandle)
		h.Canonical = true
		return h, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, f)
}

// DumpEntry is one stored value: owning address, storage path, and the
// serialized resource, all hex encoded.
type DumpEntry struct {
	Address string `codec:"address" json:"address"`
	Path    string `codec:"path" json:"path"`
	Value   string `codec:"value" json:"value"`
}

// Dump is a portable snapshot of synthesized state. Entries keep their
// insertion order, so a dump built from write-sets replays in the
// canonical order.
type Dump struct {
	Version uint32      `codec:"version" json:"version"`
	Entries []DumpEntry `codec:"entries" json:"entries"`
}

// NewDump returns an empty dump at the current version.
func NewDump() *Dump {
	return &Dump{Version: DumpVersion}
}

// Len returns the number of entries.
func (d *Dump) Len() int {
	return len(d.Entries)
}

// Add appends one stored value.
func (d *Dump) Add(ap types.AccessPath, value []byte) {
	d.Entries = append(d.Entries, DumpEntry{
		Address: ap.Address.Hex(),
		Path:    hex.EncodeToString(ap.Path),
		Value:   hex.EncodeToString(value),
	})
}

// AddWriteSet appends every entry of the write-set. Dumps hold full
// snapshots, so a deletion op yields ErrDeletionEntry.
func (d *Dump) AddWriteSet(ws types.WriteSet) error {
	for _, entry := range ws.Entries() {
		if entry.Op.Kind != types.WriteOpValue {
			return fmt.Errorf("%w at %s", ErrDeletionEntry, entry.Path)
		}
		d.Add(entry.Path, entry.Op.Value)
	}
	return nil
}

// WriteSet converts the dump back into an applicable write-set of
// full-value ops, preserving entry order.
func (d *Dump) WriteSet() (types.WriteSet, error) {
	mut := types.NewWriteSetMut()
	for i, entry := range d.Entries {
		addr, err := types.AddressFromHex(entry.Address)
		if err != nil {
			return types.WriteSet{}, fmt.Errorf("%w: entry %d address: %v", ErrCorruptDump, i, err)
		}
		path, err := hex.DecodeString(entry.Path)
		if err != nil {
			return types.WriteSet{}, fmt.Errorf("%w: entry %d path: %v", ErrCorruptDump, i, err)
		}
		value, err := hex.DecodeString(entry.Value)
		if err != nil {
			return types.WriteSet{}, fmt.Errorf("%w: entry %d value: %v", ErrCorruptDump, i, err)
		}
		mut.Push(types.AccessPath{Address: addr, Path: path}, types.NewValueOp(value))
	}
	return mut.Freeze(), nil
}

// DumpStore snapshots every stored pair into a dump, in ascending key
// order.
func DumpStore(s *Store) (*Dump, error) {
	d := NewDump()
	err := s.ForEach(func(ap types.AccessPath, value []byte) error {
		d.Add(ap, value)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Encode writes the dump to w in the given format, wrapped in an LZ4
// frame when compress is set.
func (d *Dump) Encode(w io.Writer, format Format, compress bool) error {
	h, err := format.handle()
	if err != nil {
		return err
	}

	out := w
	var zw *lz4.Writer
	if compress {
		zw = lz4.NewWriter(w)
		out = zw
	}

	if err := codec.NewEncoder(out, h).Encode(d); err != nil {
		return fmt.Errorf("encode dump: %w", err)
	}

	if zw != nil {
		if err := zw.Close(); err != nil {
			return fmt.Errorf("close lz4 frame: %w", err)
		}
	}
	return nil
}

// DecodeDump reads a dump from r, undoing the LZ4 frame when
// compressed is set, and checks the schema version.
func DecodeDump(r io.Reader, format Format, compressed bool) (*Dump, error) {
	h, err := format.handle()
	if err != nil {
		return nil, err
	}

	in := r
	if compressed {
		in = lz4.NewReader(r)
	}

	d := new(Dump)
	if err := codec.NewDecoder(in, h).Decode(d); err != nil {
		return nil, fmt.Errorf("decode dump: %w", err)
	}
	if d.Version != DumpVersion {
		return nil, fmt.Errorf("%w: %d", ErrDumpVersion, d.Version)
	}
	return d, nil
}
