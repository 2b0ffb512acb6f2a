// internal/dict/dict.go
//
// Prefix-tree dictionary for the Quartiles solver.
//
// Responsibilities:
//   - Store a set of words and answer exact-membership queries (Contains).
//   - Answer prefix-membership queries (ContainsPrefix): "does any stored
//     word start with this prefix?"
//   - Support incremental population (Insert/Populate); insertion order never
//     affects query results.
//
// The prefix query is what makes the solver's pruning effective: the moment a
// candidate's prefix has no continuation in the tree, the entire extension
// space of that candidate is abandoned without being constructed.
//
// Constraints:
//   - A Dictionary is mutable only while being populated. Once handed to a
//     solver it must be treated as read-only; queries take no locks and keep
//     no hidden state, so a frozen Dictionary is safe to share across any
//     number of concurrently running solvers.
//   - There is no removal operation.

package dict

// node is a single trie node. An absent child edge means both Contains and
// ContainsPrefix are false for anything extending that prefix.
type node struct {
	children map[byte]*node
	terminal bool
}

func newNode() *node {
	return &node{children: make(map[byte]*node)}
}

// Dictionary is a prefix tree (trie) of words over a byte alphabet, with a
// terminal marker on nodes that end a stored word.
type Dictionary struct {
	root *node
	size int
}

// New constructs an empty dictionary. An empty dictionary is valid and simply
// yields no matches.
func New() *Dictionary {
	return &Dictionary{root: newNode()}
}

// Len reports the number of stored words.
func (d *Dictionary) Len() int { return d.size }

// IsEmpty reports whether the dictionary holds no words.
func (d *Dictionary) IsEmpty() bool { return d.size == 0 }

// Insert adds a word to the dictionary. Inserting a word twice is a no-op.
func (d *Dictionary) Insert(word string) {
	n := d.root
	for i := 0; i < len(word); i++ {
		c := word[i]
		child, ok := n.children[c]
		if !ok {
			child = newNode()
			n.children[c] = child
		}
		n = child
	}
	if !n.terminal {
		n.terminal = true
		d.size++
	}
}

// Populate inserts every word in the given list.
func (d *Dictionary) Populate(words []string) {
	for _, w := range words {
		d.Insert(w)
	}
}

// walk follows edges letter by letter and returns the node at the end of s,
// or nil if any edge is missing.
func (d *Dictionary) walk(s string) *node {
	n := d.root
	for i := 0; i < len(s); i++ {
		next, ok := n.children[s[i]]
		if !ok {
			return nil
		}
		n = next
	}
	return n
}

// Contains reports whether the exact word is stored in the dictionary.
func (d *Dictionary) Contains(word string) bool {
	n := d.walk(word)
	return n != nil && n.terminal
}

// ContainsPrefix reports whether any stored word starts with prefix.
// The empty prefix matches iff the dictionary is non-empty.
func (d *Dictionary) ContainsPrefix(prefix string) bool {
	// Every node lies on the path of at least one stored word, so reaching a
	// node is sufficient, except in an empty trie where only the root exists.
	return d.size > 0 && d.walk(prefix) != nil
}

// Words returns all stored words in lexicographic order.
func (d *Dictionary) Words() []string {
	out := make([]string, 0, d.size)
	var visit func(n *node, prefix []byte)
	visit = func(n *node, prefix []byte) {
		if n.terminal {
			out = append(out, string(prefix))
		}
		// Children are held in a map; iterate edges in byte order so that the
		// result is stable.
		for c := 0; c < 256; c++ {
			if child, ok := n.children[byte(c)]; ok {
				visit(child, append(prefix, byte(c)))
			}
		}
	}
	visit(d.root, nil)
	return out
}
