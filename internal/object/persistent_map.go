package object

// Persistent Hash Array Mapped Trie (HAMT) implementation
// Provides efficient immutable map operations

const (
	hamtBits = 5
	hamtSize = 1 << hamtBits // 32
	hamtMask = hamtSize - 1
)

// Entry is one key-value pair of a map.
type Entry struct {
	Key, Value Object
}

// PersistentMap is an immutable hash map
type PersistentMap struct {
	root  *hamtNode
	count int
}

// hamtNode is a node in the HAMT
type hamtNode struct {
	bitmap uint32        // which indices are populated
	nodes  []interface{} // hamtEntry or *hamtNode
}

// hamtEntry holds a key-value pair
type hamtEntry struct {
	hash  uint32
	key   Object
	value Object
}

// EmptyMap returns an empty persistent map
func EmptyMap() *PersistentMap {
	return &PersistentMap{}
}

// Len returns the number of entries
func (m *PersistentMap) Len() int {
	return m.count
}

// Get returns the value for a key, or nil if not found
func (m *PersistentMap) Get(key Object) Object {
	if m.root == nil {
		return nil
	}
	return m.root.get(key.Hash(), key, 0)
}

// Put returns a new map with the key-value pair added/updated
func (m *PersistentMap) Put(key, value Object) *PersistentMap {
	hash := key.Hash()
	root := m.root
	if root == nil {
		root = &hamtNode{}
	}
	newRoot, added := root.put(hash, key, value, 0)

	newCount := m.count
	if added {
		newCount++
	}
	return &PersistentMap{root: newRoot, count: newCount}
}

// Remove returns a new map with the key removed
func (m *PersistentMap) Remove(key Object) *PersistentMap {
	if m.root == nil {
		return m
	}
	newRoot, removed := m.root.remove(key.Hash(), key, 0)
	if !removed {
		return m
	}
	return &PersistentMap{root: newRoot, count: m.count - 1}
}

// Contains checks if a key exists
func (m *PersistentMap) Contains(key Object) bool {
	return m.Get(key) != nil
}

// Items returns all key-value pairs in trie order
func (m *PersistentMap) Items() []Entry {
	items := make([]Entry, 0, m.count)
	if m.root != nil {
		m.root.collectItems(&items)
	}
	return items
}

// --- hamtNode methods ---

func (n *hamtNode) get(hash uint32, key Object, shift uint) Object {
	if shift >= 32 {
		// Collision bucket search
		for _, node := range n.nodes {
			if entry, ok := node.(hamtEntry); ok && ObjectsEqual(entry.key, key) {
				return entry.value
			}
		}
		return nil
	}

	idx := (hash >> shift) & hamtMask
	bit := uint32(1) << idx
	if n.bitmap&bit == 0 {
		return nil // not present
	}

	pos := popcount(n.bitmap & (bit - 1))
	switch v := n.nodes[pos].(type) {
	case hamtEntry:
		if v.hash == hash && ObjectsEqual(v.key, key) {
			return v.value
		}
		return nil
	case *hamtNode:
		return v.get(hash, key, shift+hamtBits)
	}
	return nil
}

func (n *hamtNode) clone() *hamtNode {
	newNode := &hamtNode{
		bitmap: n.bitmap,
		nodes:  make([]interface{}, len(n.nodes)),
	}
	copy(newNode.nodes, n.nodes)
	return newNode
}

func (n *hamtNode) put(hash uint32, key, value Object, shift uint) (*hamtNode, bool) {
	// Exhausted hash bits: this node is a collision bucket.
	if shift >= 32 {
		newNode := n.clone()
		for i, node := range newNode.nodes {
			if entry, ok := node.(hamtEntry); ok && ObjectsEqual(entry.key, key) {
				newNode.nodes[i] = hamtEntry{hash: hash, key: key, value: value}
				return newNode, false
			}
		}
		newNode.nodes = append(newNode.nodes, hamtEntry{hash: hash, key: key, value: value})
		return newNode, true
	}

	idx := (hash >> shift) & hamtMask
	bit := uint32(1) << idx
	newNode := n.clone()

	if n.bitmap&bit == 0 {
		newNode.bitmap |= bit
		pos := popcount(newNode.bitmap & (bit - 1))
		newNode.nodes = append(newNode.nodes, nil)
		copy(newNode.nodes[pos+1:], newNode.nodes[pos:])
		newNode.nodes[pos] = hamtEntry{hash: hash, key: key, value: value}
		return newNode, true
	}

	pos := popcount(n.bitmap & (bit - 1))
	switch v := newNode.nodes[pos].(type) {
	case hamtEntry:
		if v.hash == hash && ObjectsEqual(v.key, key) {
			newNode.nodes[pos] = hamtEntry{hash: hash, key: key, value: value}
			return newNode, false
		}
		// Push both entries one level down
		child := &hamtNode{}
		child, _ = child.put(v.hash, v.key, v.value, shift+hamtBits)
		child, _ = child.put(hash, key, value, shift+hamtBits)
		newNode.nodes[pos] = child
		return newNode, true

	case *hamtNode:
		newChild, added := v.put(hash, key, value, shift+hamtBits)
		newNode.nodes[pos] = newChild
		return newNode, added
	}

	return newNode, false
}

func (n *hamtNode) without(pos int, bit uint32) *hamtNode {
	newNode := &hamtNode{
		bitmap: n.bitmap &^ bit,
		nodes:  make([]interface{}, len(n.nodes)-1),
	}
	copy(newNode.nodes[:pos], n.nodes[:pos])
	copy(newNode.nodes[pos:], n.nodes[pos+1:])
	return newNode
}

func (n *hamtNode) remove(hash uint32, key Object, shift uint) (*hamtNode, bool) {
	if shift >= 32 {
		for i, node := range n.nodes {
			if entry, ok := node.(hamtEntry); ok && ObjectsEqual(entry.key, key) {
				// Buckets do not use the bitmap
				return n.without(i, 0), true
			}
		}
		return n, false
	}

	idx := (hash >> shift) & hamtMask
	bit := uint32(1) << idx
	if n.bitmap&bit == 0 {
		return n, false // not present
	}

	pos := popcount(n.bitmap & (bit - 1))
	switch v := n.nodes[pos].(type) {
	case hamtEntry:
		if v.hash == hash && ObjectsEqual(v.key, key) {
			return n.without(pos, bit), true
		}
		return n, false

	case *hamtNode:
		newChild, removed := v.remove(hash, key, shift+hamtBits)
		if !removed {
			return n, false
		}
		if len(newChild.nodes) == 0 {
			return n.without(pos, bit), true
		}
		newNode := n.clone()
		// A lone entry moves up; a lone subtree keeps its depth.
		if entry, ok := newChild.nodes[0].(hamtEntry); ok && len(newChild.nodes) == 1 {
			newNode.nodes[pos] = entry
		} else {
			newNode.nodes[pos] = newChild
		}
		return newNode, true
	}

	return n, false
}

func (n *hamtNode) collectItems(items *[]Entry) {
	for _, node := range n.nodes {
		switch v := node.(type) {
		case hamtEntry:
			*items = append(*items, Entry{Key: v.key, Value: v.value})
		case *hamtNode:
			v.collectItems(items)
		}
	}
}

// popcount counts set bits
func popcount(x uint32) int {
	x = x - ((x >> 1) & 0x55555555)
	x = (x & 0x33333333) + ((x >> 2) & 0x33333333)
	x = (x + (x >> 4)) & 0x0f0f0f0f
	x = x + (x >> 8)
	x = x + (x >> 16)
	return int(x & 0x3f)
}
