package prefix

import (
	"bytes"
	"fmt"
	"io"

	"github.com/bitseq-go/bitseq"
)

// Tree is the binary decision trie for a validated code table.  Each
// codeword is a root-to-leaf path, one level per bit.  A Tree is built
// once, never mutated afterwards, and may be cached across any number
// of decodes; it holds no reference to the table it was built from.
type Tree[S comparable] struct {
	// nodes is an arena.  nodes[0] is the root; a child index of 0
	// therefore means "empty slot", since the root is never a child.
	nodes []node[S]
}

type node[S comparable] struct {
	child [2]int32
	leaf  bool
	sym   S
}

// NewTree validates code and builds its decision trie.  If any codeword
// is a prefix of another, NewTree fails with ErrAmbiguous; the outcome
// does not depend on the table's iteration order, because it depends
// only on the prefix relation between codewords.  No partially built
// tree is ever returned.
func NewTree[S comparable](code Code[S]) (*Tree[S], error) {
	if err := Validate(code); err != nil {
		return nil, err
	}
	t := &Tree[S]{nodes: make([]node[S], 1, 1+2*len(code))}
	for sym, cw := range code {
		if err := t.insert(sym, cw); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Tree[S]) insert(sym S, cw bitseq.Bits) error {
	cur := int32(0)
	last := cw.Len() - 1
	for i := 0; i < last; i++ {
		slot := bitIndex(cw.Get(i))
		next := t.nodes[cur].child[slot]
		if next == 0 {
			next = t.alloc(node[S]{})
			t.nodes[cur].child[slot] = next
		} else if t.nodes[next].leaf {
			// A shorter codeword already terminates on this path.
			return fmt.Errorf("%w: codeword for symbol %v extends a shorter codeword", ErrAmbiguous, sym)
		}
		cur = next
	}
	slot := bitIndex(cw.Get(last))
	if t.nodes[cur].child[slot] != 0 {
		return fmt.Errorf("%w: codeword for symbol %v is a prefix of another codeword", ErrAmbiguous, sym)
	}
	t.nodes[cur].child[slot] = t.alloc(node[S]{leaf: true, sym: sym})
	return nil
}

func (t *Tree[S]) alloc(n node[S]) int32 {
	t.nodes = append(t.nodes, n)
	return int32(len(t.nodes) - 1)
}

// NumSymbols returns the number of codewords in the tree.
func (t *Tree[S]) NumSymbols() int {
	count := 0
	for _, n := range t.nodes {
		if n.leaf {
			count++
		}
	}
	return count
}

// Dump writes a programmer-readable debugging dump of the Tree's
// contents to the given writer, one codeword per line in depth-first
// order.
func (t *Tree[S]) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Tree{\n")
	t.dump(&buf, 0, make([]byte, 0, 16))
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

func (t *Tree[S]) dump(buf *bytes.Buffer, cur int32, path []byte) {
	n := t.nodes[cur]
	if n.leaf {
		fmt.Fprintf(buf, "\t%q = %v\n", path, n.sym)
		return
	}
	for slot := 0; slot < 2; slot++ {
		if c := n.child[slot]; c != 0 {
			t.dump(buf, c, append(path, '0'+byte(slot)))
		}
	}
}

func bitIndex(v bool) int {
	if v {
		return 1
	}
	return 0
}
