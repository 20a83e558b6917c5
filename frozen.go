package bitseq

import (
	"encoding"
	"encoding/binary"
	"errors"
	"hash/maphash"
	"io"
)

// Mutation and hashing rules at dynamic boundaries.
var (
	// ErrFrozen is returned when mutation is requested on a Frozen
	// through a dynamic interface such as encoding.BinaryUnmarshaler.
	ErrFrozen = errors.New("bitseq: frozen bit sequence cannot be mutated")

	// ErrUnhashable is returned by HashOf for a mutable Bitseq.
	ErrUnhashable = errors.New("bitseq: mutable bit sequence is unhashable")
)

// Frozen is an immutable bit sequence.  It shares every read operation
// with Bitseq but has no mutating methods, so immutability is enforced
// at compile time rather than by runtime checks.  Unlike Bitseq, a
// Frozen has a stable content hash consistent with Equal.
type Frozen struct {
	bs Bitseq
}

// Freeze returns an immutable snapshot of src.
func Freeze(src Bits) *Frozen {
	return &Frozen{bs: Bitseq{
		buf:    append([]byte(nil), src.raw()...),
		nbits:  src.Len(),
		endian: src.Endian(),
	}}
}

// Thaw returns a mutable copy of the frozen sequence.
func (f *Frozen) Thaw() *Bitseq {
	return Copy(f)
}

// Len returns the number of bits in the sequence.
func (f *Frozen) Len() int {
	return f.bs.nbits
}

// Endian returns the endianness used for byte-level serialization.
func (f *Frozen) Endian() Endian {
	return f.bs.endian
}

// Hashable reports whether the sequence has a content hash, which is
// true for every Frozen.
func (f *Frozen) Hashable() bool {
	return true
}

// Get returns the bit at index i.
func (f *Frozen) Get(i int) bool {
	return f.bs.Get(i)
}

// Count returns the number of bits equal to v.
func (f *Frozen) Count(v bool) int {
	return f.bs.Count(v)
}

// Index returns the index of the first bit equal to v.
func (f *Frozen) Index(v bool) (int, bool) {
	return f.bs.Index(v)
}

// Any reports whether any bit is set.
func (f *Frozen) Any() bool {
	return f.bs.Any()
}

// All reports whether every bit is set.
func (f *Frozen) All() bool {
	return f.bs.All()
}

// Slice returns a new mutable Bitseq holding a copy of the bits in
// [i, j).
func (f *Frozen) Slice(i, j int) *Bitseq {
	return sliceBits(f, i, j)
}

// Equal reports whether f and o hold identical bits.
func (f *Frozen) Equal(o Bits) bool {
	return equalBits(f, o)
}

// String returns the bits as a string of '0' and '1' characters.
func (f *Frozen) String() string {
	return f.bs.String()
}

// ToBytes returns the machine representation of the sequence.
func (f *Frozen) ToBytes() []byte {
	return toBytes(f)
}

// WriteTo writes the machine representation to w.
func (f *Frozen) WriteTo(w io.Writer) (int64, error) {
	return writeBits(f, w)
}

// MarshalBinary encodes the sequence in the same format as
// Bitseq.MarshalBinary.
func (f *Frozen) MarshalBinary() ([]byte, error) {
	return marshalBits(f)
}

// UnmarshalBinary always fails with ErrFrozen.  It exists so that a
// Frozen passed around as encoding.BinaryUnmarshaler rejects mutation
// instead of silently dropping it.
func (f *Frozen) UnmarshalBinary([]byte) error {
	return ErrFrozen
}

var hashSeed = maphash.MakeSeed()

// Hash returns a content hash that is stable within a process and
// consistent with Equal: two Frozen values with identical bits and
// length hash identically.  Endianness is not part of the hash, just as
// it is not part of equality.
func (f *Frozen) Hash() uint64 {
	var h maphash.Hash
	h.SetSeed(hashSeed)
	var lenBuf [8]byte
	binary.BigEndian.PutUint64(lenBuf[:], uint64(f.bs.nbits))
	_, _ = h.Write(lenBuf[:])
	_, _ = h.Write(f.bs.buf)
	return h.Sum64()
}

// HashOf returns the content hash of b.  Only Frozen sequences are
// hashable; a mutable Bitseq fails with ErrUnhashable.
func HashOf(b Bits) (uint64, error) {
	f, ok := b.(*Frozen)
	if !ok {
		return 0, ErrUnhashable
	}
	return f.Hash(), nil
}

func (f *Frozen) raw() []byte {
	return f.bs.buf
}

var (
	_ Bits                       = (*Frozen)(nil)
	_ io.WriterTo                = (*Frozen)(nil)
	_ encoding.BinaryMarshaler   = (*Frozen)(nil)
	_ encoding.BinaryUnmarshaler = (*Frozen)(nil)
)
