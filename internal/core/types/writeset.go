package types

import (
	"fmt"

	"github.com/LeJamon/goLibra/internal/codec/lcs"
)

// WriteOpKind discriminates write operations. The numeric values are
// the serialized variant indices.
type WriteOpKind uint8

const (
	// WriteOpDeletion removes the value at a path.
	WriteOpDeletion WriteOpKind = 0
	// WriteOpValue replaces the full value at a path.
	WriteOpValue WriteOpKind = 1
)

// String returns the string representation of the kind.
func (k WriteOpKind) String() string {
	switch k {
	case WriteOpDeletion:
		return "Deletion"
	case WriteOpValue:
		return "Value"
	default:
		return fmt.Sprintf("WriteOpKind(%d)", uint8(k))
	}
}

// WriteOp is a single storage mutation. Values are always complete
// serialized resources; there are no partial updates.
type WriteOp struct {
	Kind  WriteOpKind
	Value []byte
}

// NewValueOp returns a full-value write.
func NewValueOp(value []byte) WriteOp {
	return WriteOp{Kind: WriteOpValue, Value: value}
}

// NewDeletionOp returns a deletion.
func NewDeletionOp() WriteOp {
	return WriteOp{Kind: WriteOpDeletion}
}

// EncodeLCS writes the variant index and, for values, the bytes.
func (op WriteOp) EncodeLCS(e *lcs.Encoder) {
	e.WriteVariant(uint32(op.Kind))
	if op.Kind == WriteOpValue {
		e.WriteBytes(op.Value)
	}
}

// WriteEntry pairs an access path with its operation.
type WriteEntry struct {
	Path AccessPath
	Op   WriteOp
}

// WriteSetMut accumulates entries in insertion order. Freeze it to get
// the immutable WriteSet consumers apply.
type WriteSetMut struct {
	entries []WriteEntry
}

// NewWriteSetMut returns a builder with optional initial entries.
func NewWriteSetMut(entries ...WriteEntry) *WriteSetMut {
	return &WriteSetMut{entries: entries}
}

// Push appends one entry.
func (m *WriteSetMut) Push(path AccessPath, op WriteOp) {
	m.entries = append(m.entries, WriteEntry{Path: path, Op: op})
}

// Len returns the number of accumulated entries.
func (m *WriteSetMut) Len() int {
	return len(m.entries)
}

// Freeze returns the immutable write-set. The builder's entries are
// copied, so later pushes do not leak into the frozen set.
func (m *WriteSetMut) Freeze() WriteSet {
	entries := make([]WriteEntry, len(m.entries))
	copy(entries, m.entries)
	return WriteSet{entries: entries}
}

// WriteSet is an ordered, immutable list of storage mutations. Entry
// order is part of the contract: synthesizers emit entries in a
// documented canonical order and applying the set replays them in that
// order.
type WriteSet struct {
	entries []WriteEntry
}

// Len returns the number of entries.
func (ws WriteSet) Len() int {
	return len(ws.entries)
}

// Get returns the entry at index i.
func (ws WriteSet) Get(i int) WriteEntry {
	return ws.entries[i]
}

// Entries returns a copy of the entry list.
func (ws WriteSet) Entries() []WriteEntry {
	out := make([]WriteEntry, len(ws.entries))
	copy(out, ws.entries)
	return out
}

// Merge returns a new write-set with other's entries appended after
// ws's entries.
func (ws WriteSet) Merge(other WriteSet) WriteSet {
	entries := make([]WriteEntry, 0, len(ws.entries)+len(other.entries))
	entries = append(entries, ws.entries...)
	entries = append(entries, other.entries...)
	return WriteSet{entries: entries}
}

// EncodeLCS writes the entry sequence: count, then each path/op pair.
func (ws WriteSet) EncodeLCS(e *lcs.Encoder) {
	e.WriteLen(len(ws.entries))
	for _, entry := range ws.entries {
		entry.Path.EncodeLCS(e)
		entry.Op.EncodeLCS(e)
	}
}
