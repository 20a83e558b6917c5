package bitseq

import (
	mathbits "math/bits"
	"runtime"

	"github.com/chronos-tachyon/assert"
)

// BytesFor returns the number of bytes needed to store nbits bits.
func BytesFor(nbits int) int {
	assert.Assertf(nbits >= 0, "negative bit count %d", nbits)
	return bytesFor(nbits)
}

// Distance returns the Hamming distance between a and b, i.e. the number
// of positions at which they differ.  The lengths must match.
func Distance(a, b Bits) int {
	assert.Assertf(a.Len() == b.Len(), "length mismatch: %d vs %d", a.Len(), b.Len())
	ar, br := a.raw(), b.raw()
	d := 0
	for i := range ar {
		d += popcount8(ar[i] ^ br[i])
	}
	return d
}

// Info describes the environment the library is running in.
type Info struct {
	Version  string
	WordBits int
	PtrBits  int
	OS       string
	Arch     string
}

// SysInfo returns build and platform details, mainly for diagnostics.
func SysInfo() Info {
	return Info{
		Version:  Version,
		WordBits: mathbits.UintSize,
		PtrBits:  32 << (^uintptr(0) >> 63),
		OS:       runtime.GOOS,
		Arch:     runtime.GOARCH,
	}
}

func popcount8(b byte) int {
	return mathbits.OnesCount8(b)
}
