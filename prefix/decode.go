package prefix

import (
	"fmt"

	"github.com/bitseq-go/bitseq"
)

// Decode validates code, builds its decision trie, and decodes bits
// into the symbol stream that produced it.  On any failure no symbols
// are returned.  To amortize tree construction across several decodes,
// build the tree once with NewTree and call Tree.Decode.
func Decode[S comparable](code Code[S], bits bitseq.Bits) ([]S, error) {
	t, err := NewTree(code)
	if err != nil {
		return nil, err
	}
	return t.Decode(bits)
}

// Iterdecode validates code, builds its decision trie, and returns a
// lazy decoder over bits.
func Iterdecode[S comparable](code Code[S], bits bitseq.Bits) (*Iterator[S], error) {
	t, err := NewTree(code)
	if err != nil {
		return nil, err
	}
	return t.Iter(bits), nil
}

// Decode walks the trie over every bit of bits and returns one symbol
// per completed codeword, in order.
//
// If the walk reaches an empty slot, Decode fails with ErrMalformed
// identifying the offending bit index.  If the input ends with a
// codeword started but not finished, Decode fails with ErrIncomplete
// reporting the number of trailing bits.
func (t *Tree[S]) Decode(bits bitseq.Bits) ([]S, error) {
	var out []S
	cur := int32(0)
	start := 0
	n := bits.Len()
	for i := 0; i < n; i++ {
		next := t.nodes[cur].child[bitIndex(bits.Get(i))]
		if next == 0 {
			return nil, fmt.Errorf("%w at bit %d", ErrMalformed, i)
		}
		if t.nodes[next].leaf {
			out = append(out, t.nodes[next].sym)
			cur = 0
			start = i + 1
		} else {
			cur = next
		}
	}
	if cur != 0 {
		return nil, fmt.Errorf("%w: %d trailing bits", ErrIncomplete, n-start)
	}
	return out, nil
}

// Iter returns a lazy decoder over bits.  The Iterator is single-use
// and forward-only; create a fresh one to decode again.
func (t *Tree[S]) Iter(bits bitseq.Bits) *Iterator[S] {
	return &Iterator[S]{tree: t, bits: bits}
}

// Iterator produces decoded symbols one at a time, in the style of
// bufio.Scanner: Next advances to the next symbol, Symbol returns it,
// and Err reports the failure that stopped iteration, if any.
//
// An Iterator agrees with Tree.Decode bit for bit: it yields the same
// symbols and fails under the same conditions at the same bit
// positions, differing only in when the symbols materialize.  Stopping
// early is always safe; neither the tree nor the bit sequence is
// touched beyond reads.
type Iterator[S comparable] struct {
	tree *Tree[S]
	bits bitseq.Bits
	pos  int
	sym  S
	err  error
	done bool
}

// Next advances to the next symbol.  It returns false when the input is
// exhausted or a decode failure occurs; the two cases are told apart by
// Err.
func (it *Iterator[S]) Next() bool {
	if it.done {
		return false
	}
	t := it.tree
	n := it.bits.Len()
	cur := int32(0)
	start := it.pos
	for it.pos < n {
		i := it.pos
		next := t.nodes[cur].child[bitIndex(it.bits.Get(i))]
		if next == 0 {
			it.err = fmt.Errorf("%w at bit %d", ErrMalformed, i)
			it.done = true
			return false
		}
		it.pos++
		if t.nodes[next].leaf {
			it.sym = t.nodes[next].sym
			return true
		}
		cur = next
	}
	if cur != 0 {
		it.err = fmt.Errorf("%w: %d trailing bits", ErrIncomplete, n-start)
	}
	it.done = true
	return false
}

// Symbol returns the symbol produced by the last successful Next.
func (it *Iterator[S]) Symbol() S {
	return it.sym
}

// Err returns the failure that ended iteration, or nil if the input was
// fully decoded or iteration has not ended yet.
func (it *Iterator[S]) Err() error {
	return it.err
}
