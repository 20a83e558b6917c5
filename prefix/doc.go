// Package prefix implements a prefix-code codec: given a table mapping
// symbols to mutually prefix-free codewords, it encodes symbol streams
// into a bit sequence and decodes bit sequences back into symbols, in
// one shot or lazily.
//
// References:
//
//	<https://en.wikipedia.org/wiki/Prefix_code>
package prefix
