package bitseq

import (
	"encoding"
	"encoding/binary"
	"fmt"
	"io"
	mathbits "math/bits"

	"github.com/chronos-tachyon/assert"
)

// ToBytes returns the machine representation of the sequence: one byte
// per eight bits laid out per the sequence's endianness, with the unused
// bits of the final byte set to zero.
func (b *Bitseq) ToBytes() []byte {
	return toBytes(b)
}

// FromBytes returns a Bitseq holding the first nbits bits of the machine
// representation p, interpreted per the configured endianness.
func FromBytes(p []byte, nbits int, opts ...Option) *Bitseq {
	assert.Assertf(nbits >= 0 && nbits <= 8*len(p), "bit count %d out of range [0, %d]", nbits, 8*len(p))
	b := New(0, opts...)
	b.buf = append(b.buf[:0], p[:bytesFor(nbits)]...)
	b.nbits = nbits
	if b.endian == LittleEndian {
		for i := range b.buf {
			b.buf[i] = mathbits.Reverse8(b.buf[i])
		}
	}
	b.clearPad()
	return b
}

// WriteTo writes the machine representation to w, padding the final
// partial byte with zero bits.  It implements io.WriterTo.
func (b *Bitseq) WriteTo(w io.Writer) (int64, error) {
	return writeBits(b, w)
}

// ReadFrom appends eight bits per byte read from r, interpreted per the
// sequence's endianness, until EOF.  It implements io.ReaderFrom.
func (b *Bitseq) ReadFrom(r io.Reader) (int64, error) {
	p, err := io.ReadAll(r)
	if err != nil {
		return int64(len(p)), err
	}
	b.appendMachineBytes(p)
	return int64(len(p)), nil
}

// FromBytesAppend appends the first nbits bits of the machine
// representation p, interpreted per the sequence's endianness.  Unlike
// FromBytes it extends the sequence instead of constructing a new one.
func (b *Bitseq) FromBytesAppend(p []byte, nbits int) {
	assert.Assertf(nbits >= 0 && nbits <= 8*len(p), "bit count %d out of range [0, %d]", nbits, 8*len(p))
	full := nbits / 8
	b.appendMachineBytes(p[:full])
	if rem := nbits & 7; rem != 0 {
		by := p[full]
		if b.endian == LittleEndian {
			by = mathbits.Reverse8(by)
		}
		for k := 7; k >= 8-rem; k-- {
			b.Append(by>>uint(k)&1 == 1)
		}
	}
}

// Pack appends one bit per byte of p: zero bytes become 0 bits, all
// other values become 1 bits.
func (b *Bitseq) Pack(p []byte) {
	for _, by := range p {
		b.Append(by != 0)
	}
}

// Fill pads the sequence with zero bits up to the next byte boundary and
// returns the number of bits added.
func (b *Bitseq) Fill() int {
	pad := (8 - b.nbits&7) & 7
	b.nbits += pad
	return pad
}

// ByteReverse reverses the bit order within each byte of the backing
// store.  For a partial final byte the pad positions take part in the
// reversal; bits shifted into the pad are cleared.
func (b *Bitseq) ByteReverse() {
	for i := range b.buf {
		b.buf[i] = mathbits.Reverse8(b.buf[i])
	}
	b.clearPad()
}

// MarshalBinary encodes the sequence as a self-describing byte string:
// one endianness byte, the bit count as a big-endian uint64, then the
// machine representation.
func (b *Bitseq) MarshalBinary() ([]byte, error) {
	return marshalBits(b)
}

// UnmarshalBinary replaces the sequence with one decoded from data, as
// produced by MarshalBinary.
func (b *Bitseq) UnmarshalBinary(data []byte) error {
	if len(data) < 9 {
		return fmt.Errorf("bitseq: truncated header: %d bytes", len(data))
	}
	endian := Endian(data[0])
	if endian != BigEndian && endian != LittleEndian {
		return fmt.Errorf("bitseq: unknown endianness byte 0x%02x", data[0])
	}
	nbits := binary.BigEndian.Uint64(data[1:9])
	payload := data[9:]
	if nbits > uint64(8*len(payload)) {
		return fmt.Errorf("bitseq: bit count %d exceeds payload of %d bytes", nbits, len(payload))
	}
	*b = *FromBytes(payload, int(nbits), WithEndian(endian))
	return nil
}

func (b *Bitseq) appendMachineBytes(p []byte) {
	for _, by := range p {
		if b.endian == LittleEndian {
			by = mathbits.Reverse8(by)
		}
		for k := 7; k >= 0; k-- {
			b.Append(by>>uint(k)&1 == 1)
		}
	}
}

func toBytes(b Bits) []byte {
	out := append([]byte(nil), b.raw()...)
	if b.Endian() == LittleEndian {
		for i := range out {
			out[i] = mathbits.Reverse8(out[i])
		}
	}
	return out
}

func writeBits(b Bits, w io.Writer) (int64, error) {
	n, err := w.Write(toBytes(b))
	return int64(n), err
}

func marshalBits(b Bits) ([]byte, error) {
	payload := toBytes(b)
	out := make([]byte, 9, 9+len(payload))
	out[0] = byte(b.Endian())
	binary.BigEndian.PutUint64(out[1:9], uint64(b.Len()))
	return append(out, payload...), nil
}

var (
	_ io.WriterTo                = (*Bitseq)(nil)
	_ io.ReaderFrom              = (*Bitseq)(nil)
	_ encoding.BinaryMarshaler   = (*Bitseq)(nil)
	_ encoding.BinaryUnmarshaler = (*Bitseq)(nil)
)
