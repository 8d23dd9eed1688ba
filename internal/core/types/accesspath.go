package types

import (
	"bytes"
	"encoding/hex"

	"github.com/LeJamon/goLibra/internal/codec/lcs"
)

// ResourcePathTag is the first byte of every resource storage path.
// It separates the resource namespace from other path kinds the ledger
// may add later, the same way hash-space prefixes separate key domains.
const ResourcePathTag byte = 0x01

// AccessPath addresses one stored value in the ledger: the owning
// account plus an opaque path derived from the value's type.
type AccessPath struct {
	Address AccountAddress
	Path    []byte
}

// ResourceAccessPath returns the access path for the resource named by
// tag under addr. The path is the resource tag byte followed by the
// digest of the canonical struct tag bytes, so paths are deterministic
// and never collide across distinct types.
func ResourceAccessPath(addr AccountAddress, tag StructTag) AccessPath {
	h := tag.Hash()
	path := make([]byte, 1+len(h))
	path[0] = ResourcePathTag
	copy(path[1:], h[:])
	return AccessPath{Address: addr, Path: path}
}

// Key returns the flat storage key: address bytes followed by path
// bytes. Backends index stored values by this key.
func (ap AccessPath) Key() []byte {
	out := make([]byte, 0, AddressLength+len(ap.Path))
	out = append(out, ap.Address[:]...)
	out = append(out, ap.Path...)
	return out
}

// Equal reports whether two access paths address the same value.
func (ap AccessPath) Equal(other AccessPath) bool {
	return ap.Address == other.Address && bytes.Equal(ap.Path, other.Path)
}

// String renders the path as address/path-hex.
func (ap AccessPath) String() string {
	return ap.Address.Hex() + "/" + hex.EncodeToString(ap.Path)
}

// EncodeLCS writes the address followed by the length-prefixed path.
func (ap AccessPath) EncodeLCS(e *lcs.Encoder) {
	ap.Address.EncodeLCS(e)
	e.WriteBytes(ap.Path)
}

// DecodeAccessPath reads an access path from d.
func DecodeAccessPath(d *lcs.Decoder) (AccessPath, error) {
	addr, err := DecodeAddress(d)
	if err != nil {
		return AccessPath{}, err
	}
	path, err := d.ReadBytes()
	if err != nil {
		return AccessPath{}, err
	}
	return AccessPath{Address: addr, Path: path}, nil
}
