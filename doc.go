// Package bitseq implements a packed sequence of bits.  A Bitseq behaves
// much like a slice of booleans, but stores eight bits per byte and adds
// byte-level (de)serialization with selectable endianness.  The Frozen
// variant shares every read operation but is immutable and hashable.
//
// The prefix subpackage implements a prefix-code (Huffman-style) codec
// on top of this storage.
//
// References:
//
//	<https://en.wikipedia.org/wiki/Bit_array>
package bitseq
