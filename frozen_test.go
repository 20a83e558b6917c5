package bitseq

import (
	"encoding"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreezeSnapshot(t *testing.T) {
	src := mustBits(t, "0101")
	f := Freeze(src)

	src.SetAll(true)
	assert.Equal(t, "0101", f.String(), "freezing must snapshot, not alias")
	assert.Equal(t, 4, f.Len())
}

func TestFrozenReads(t *testing.T) {
	f := Freeze(mustBits(t, "0101100"))

	assert.True(t, f.Get(1))
	assert.False(t, f.Get(0))
	assert.Equal(t, 3, f.Count(true))
	assert.Equal(t, "0110", f.Slice(2, 6).String())
	assert.Equal(t, []byte{0x58}, f.ToBytes())
	assert.True(t, f.Any())
	assert.False(t, f.All())

	i, ok := f.Index(true)
	require.True(t, ok)
	assert.Equal(t, 1, i)
}

func TestThaw(t *testing.T) {
	f := Freeze(mustBits(t, "0101"))
	m := f.Thaw()
	m.Invert()
	assert.Equal(t, "1010", m.String())
	assert.Equal(t, "0101", f.String(), "thawed copy must not alias the frozen storage")
}

func TestFrozenUnmarshalBinary(t *testing.T) {
	f := Freeze(mustBits(t, "0101"))
	data, err := f.MarshalBinary()
	require.NoError(t, err)

	// Mutation through the dynamic boundary is rejected and leaves the
	// content untouched.
	var u encoding.BinaryUnmarshaler = f
	assert.ErrorIs(t, u.UnmarshalBinary(data), ErrFrozen)
	assert.Equal(t, "0101", f.String())
	assert.Equal(t, 4, f.Len())
}

func TestHashConsistency(t *testing.T) {
	a := Freeze(mustBits(t, "010110"))
	b := Freeze(mustBits(t, "010110", WithEndian(LittleEndian)))
	c := Freeze(mustBits(t, "010111"))
	d := Freeze(mustBits(t, "0101100"))

	assert.Equal(t, a.Hash(), b.Hash(), "equal content must hash equally regardless of endianness")
	assert.NotEqual(t, a.Hash(), c.Hash(), "differing content should hash differently")
	assert.NotEqual(t, a.Hash(), d.Hash(), "differing length should hash differently")
}

func TestHashOf(t *testing.T) {
	f := Freeze(mustBits(t, "0101"))
	h, err := HashOf(f)
	require.NoError(t, err)
	assert.Equal(t, f.Hash(), h)

	_, err = HashOf(mustBits(t, "0101"))
	assert.ErrorIs(t, err, ErrUnhashable)
}

func TestHashable(t *testing.T) {
	assert.False(t, mustBits(t, "0101").Hashable())
	assert.True(t, Freeze(mustBits(t, "0101")).Hashable())
}

func TestFrozenEqual(t *testing.T) {
	f := Freeze(mustBits(t, "0101"))
	assert.True(t, f.Equal(mustBits(t, "0101")))
	assert.True(t, mustBits(t, "0101").Equal(f))
	assert.False(t, f.Equal(mustBits(t, "1101")))
}
