package bitseq

import (
	"fmt"
	"io"
	"strings"

	"github.com/chronos-tachyon/assert"
)

// Endian selects the bit layout used by byte-level (de)serialization:
// ToBytes, FromBytes, WriteTo, and ReadFrom.  It never affects bit-level
// semantics; Get(0) is the first bit of the sequence either way.
type Endian byte

const (
	// BigEndian stores the first bit of each group of eight in the most
	// significant bit of the byte.  This is the default.
	BigEndian Endian = iota

	// LittleEndian stores the first bit of each group of eight in the
	// least significant bit of the byte.
	LittleEndian
)

// String returns "big" or "little".
func (e Endian) String() string {
	if e == LittleEndian {
		return "little"
	}
	return "big"
}

// ParseEndian parses "big" or "little".
func ParseEndian(s string) (Endian, error) {
	switch s {
	case "big":
		return BigEndian, nil
	case "little":
		return LittleEndian, nil
	}
	return BigEndian, fmt.Errorf("bitseq: unknown endianness %q", s)
}

var _ fmt.Stringer = BigEndian

// Bits is the read-only capability shared by Bitseq and Frozen.  Mutating
// operations exist only on *Bitseq, so holding a value as Bits is enough
// to guarantee the holder cannot change it through this interface.
//
// Bits is implemented only by types in this package.
type Bits interface {
	Len() int
	Get(i int) bool
	Count(v bool) int
	Equal(o Bits) bool
	ToBytes() []byte
	WriteTo(w io.Writer) (int64, error)
	String() string
	Endian() Endian
	Hashable() bool

	// raw exposes the packed MSB-first backing store.  Keeping it
	// unexported seals the interface.
	raw() []byte
}

// Bitseq is a mutable packed bit sequence.
//
// The zero value is an empty big-endian sequence ready for use.  Bitseq
// is not safe for concurrent mutation without external synchronization.
type Bitseq struct {
	// buf holds the packed bits, first bit in the most significant bit
	// of buf[0].  Pad bits past nbits are always zero.
	buf    []byte
	nbits  int
	endian Endian
}

// Option configures a new Bitseq.
type Option func(*Bitseq)

// WithEndian sets the endianness used for byte-level (de)serialization.
func WithEndian(e Endian) Option {
	return func(b *Bitseq) {
		b.endian = e
	}
}

// New returns a Bitseq of n zero bits.
func New(n int, opts ...Option) *Bitseq {
	assert.Assertf(n >= 0, "negative length %d", n)
	b := &Bitseq{
		buf:   make([]byte, bytesFor(n)),
		nbits: n,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// FromString returns a Bitseq parsed from a string of '0' and '1'
// characters.
func FromString(s string, opts ...Option) (*Bitseq, error) {
	b := New(0, opts...)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			b.Append(false)
		case '1':
			b.Append(true)
		default:
			return nil, fmt.Errorf("bitseq: expected '0' or '1', found %q at index %d", s[i], i)
		}
	}
	return b, nil
}

// FromBools returns a Bitseq holding one bit per element of bits.
func FromBools(bits []bool, opts ...Option) *Bitseq {
	b := New(0, opts...)
	for _, v := range bits {
		b.Append(v)
	}
	return b
}

// Copy returns a mutable copy of src.  The copy inherits src's
// endianness unless overridden with WithEndian.
func Copy(src Bits, opts ...Option) *Bitseq {
	b := &Bitseq{
		buf:    append([]byte(nil), src.raw()...),
		nbits:  src.Len(),
		endian: src.Endian(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Len returns the number of bits in the sequence.
func (b *Bitseq) Len() int {
	return b.nbits
}

// Endian returns the endianness used for byte-level (de)serialization.
func (b *Bitseq) Endian() Endian {
	return b.endian
}

// Hashable reports whether the sequence has a content hash.  A mutable
// Bitseq never does; see Frozen.Hash.
func (b *Bitseq) Hashable() bool {
	return false
}

// Get returns the bit at index i.
func (b *Bitseq) Get(i int) bool {
	assert.Assertf(i >= 0 && i < b.nbits, "index %d out of range [0, %d)", i, b.nbits)
	return b.buf[i>>3]&(1<<(7-uint(i&7))) != 0
}

// Set assigns the bit at index i.
func (b *Bitseq) Set(i int, v bool) {
	assert.Assertf(i >= 0 && i < b.nbits, "index %d out of range [0, %d)", i, b.nbits)
	mask := byte(1) << (7 - uint(i&7))
	if v {
		b.buf[i>>3] |= mask
	} else {
		b.buf[i>>3] &^= mask
	}
}

// Count returns the number of bits equal to v.
func (b *Bitseq) Count(v bool) int {
	ones := 0
	for _, by := range b.buf {
		ones += popcount8(by)
	}
	if v {
		return ones
	}
	return b.nbits - ones
}

// Index returns the index of the first bit equal to v.
func (b *Bitseq) Index(v bool) (int, bool) {
	for i := 0; i < b.nbits; i++ {
		if b.Get(i) == v {
			return i, true
		}
	}
	return 0, false
}

// Any reports whether any bit is set.
func (b *Bitseq) Any() bool {
	return b.Count(true) > 0
}

// All reports whether every bit is set.  All is vacuously true for an
// empty sequence.
func (b *Bitseq) All() bool {
	return b.Count(true) == b.nbits
}

// Slice returns a new mutable Bitseq holding a copy of the bits in
// [i, j).
func (b *Bitseq) Slice(i, j int) *Bitseq {
	return sliceBits(b, i, j)
}

// Equal reports whether b and o hold identical bits.  Endianness is not
// part of equality; it only affects serialization.
func (b *Bitseq) Equal(o Bits) bool {
	return equalBits(b, o)
}

// String returns the bits as a string of '0' and '1' characters.
func (b *Bitseq) String() string {
	var sb strings.Builder
	sb.Grow(b.nbits)
	for i := 0; i < b.nbits; i++ {
		if b.Get(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Append adds a single bit to the end of the sequence.
func (b *Bitseq) Append(v bool) {
	if b.nbits&7 == 0 {
		b.buf = append(b.buf, 0)
	}
	if v {
		b.buf[b.nbits>>3] |= 1 << (7 - uint(b.nbits&7))
	}
	b.nbits++
}

// AppendBits appends every bit of o, in order.
func (b *Bitseq) AppendBits(o Bits) {
	n := o.Len()
	for i := 0; i < n; i++ {
		b.Append(o.Get(i))
	}
}

// Insert inserts a bit before index i.  i == Len() appends.
func (b *Bitseq) Insert(i int, v bool) {
	assert.Assertf(i >= 0 && i <= b.nbits, "index %d out of range [0, %d]", i, b.nbits)
	b.Append(false)
	for j := b.nbits - 1; j > i; j-- {
		b.Set(j, b.Get(j-1))
	}
	b.Set(i, v)
}

// Pop removes and returns the bit at index i.
func (b *Bitseq) Pop(i int) bool {
	assert.Assertf(i >= 0 && i < b.nbits, "index %d out of range [0, %d)", i, b.nbits)
	v := b.Get(i)
	for j := i; j < b.nbits-1; j++ {
		b.Set(j, b.Get(j+1))
	}
	b.nbits--
	b.buf = b.buf[:bytesFor(b.nbits)]
	b.clearPad()
	return v
}

// Remove removes the first bit equal to v.  It reports whether a bit
// was removed.
func (b *Bitseq) Remove(v bool) bool {
	i, found := b.Index(v)
	if !found {
		return false
	}
	b.Pop(i)
	return true
}

// Reverse reverses the order of the bits in place.
func (b *Bitseq) Reverse() {
	for i, j := 0, b.nbits-1; i < j; i, j = i+1, j-1 {
		bi, bj := b.Get(i), b.Get(j)
		b.Set(i, bj)
		b.Set(j, bi)
	}
}

// Sort sorts the bits in place: zeros before ones, or ones before zeros
// when reverse is true.
func (b *Bitseq) Sort(reverse bool) {
	ones := b.Count(true)
	b.SetAll(reverse)
	if reverse {
		for i := ones; i < b.nbits; i++ {
			b.Set(i, false)
		}
	} else {
		for i := b.nbits - ones; i < b.nbits; i++ {
			b.Set(i, true)
		}
	}
}

// SetAll assigns v to every bit.
func (b *Bitseq) SetAll(v bool) {
	fill := byte(0)
	if v {
		fill = 0xff
	}
	for i := range b.buf {
		b.buf[i] = fill
	}
	b.clearPad()
}

// Invert flips every bit in place.
func (b *Bitseq) Invert() {
	for i := range b.buf {
		b.buf[i] = ^b.buf[i]
	}
	b.clearPad()
}

// And replaces b with the bitwise AND of b and o.  The lengths must
// match.
func (b *Bitseq) And(o Bits) {
	b.applyBinary(o, func(x, y byte) byte { return x & y })
}

// Or replaces b with the bitwise OR of b and o.  The lengths must match.
func (b *Bitseq) Or(o Bits) {
	b.applyBinary(o, func(x, y byte) byte { return x | y })
}

// Xor replaces b with the bitwise XOR of b and o.  The lengths must
// match.
func (b *Bitseq) Xor(o Bits) {
	b.applyBinary(o, func(x, y byte) byte { return x ^ y })
}

func (b *Bitseq) applyBinary(o Bits, op func(x, y byte) byte) {
	assert.Assertf(b.nbits == o.Len(), "length mismatch: %d vs %d", b.nbits, o.Len())
	other := o.raw()
	for i := range b.buf {
		b.buf[i] = op(b.buf[i], other[i])
	}
	b.clearPad()
}

func (b *Bitseq) raw() []byte {
	return b.buf
}

// clearPad zeroes the unused low bits of the final byte.  Every mutator
// maintains this invariant; Equal and Frozen.Hash rely on it.
func (b *Bitseq) clearPad() {
	if rem := b.nbits & 7; rem != 0 {
		b.buf[len(b.buf)-1] &= ^byte(0) << (8 - uint(rem))
	}
}

func bytesFor(nbits int) int {
	return (nbits + 7) / 8
}

func sliceBits(b Bits, i, j int) *Bitseq {
	n := b.Len()
	assert.Assertf(i >= 0 && i <= j && j <= n, "slice bounds [%d, %d) out of range [0, %d)", i, j, n)
	out := New(0, WithEndian(b.Endian()))
	for k := i; k < j; k++ {
		out.Append(b.Get(k))
	}
	return out
}

func equalBits(a, b Bits) bool {
	if a.Len() != b.Len() {
		return false
	}
	ar, br := a.raw(), b.raw()
	for i := range ar {
		if ar[i] != br[i] {
			return false
		}
	}
	return true
}

var _ Bits = (*Bitseq)(nil)
