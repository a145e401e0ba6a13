// File: routetrie/tree.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package routetrie

import "sync"

// Tree composes a Trie (patterns only) with a canonical-path -> handler
// map, per spec §4.3. H is left generic so callers can store whatever
// handler-binding shape fits their layer (route.Binding, for example).
type Tree[H any] struct {
	mu       sync.RWMutex
	trie     *Trie
	handlers map[string]H
}

// NewTree builds an empty route tree.
func NewTree[H any]() *Tree[H] {
	return &Tree[H]{
		trie:     New(),
		handlers: make(map[string]H),
	}
}

// Register inserts pattern into the trie and binds handler to its
// canonical path.
func (t *Tree[H]) Register(pattern string, handler H) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.trie.Insert(pattern)
	segments := splitSegments(pattern)
	t.handlers[canonicalPath(segments)] = handler
}

// Match composes trie lookup with handler fetch. Either failing is a miss.
func (t *Tree[H]) Match(path string) (H, Result, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var zero H
	res, ok := t.trie.Lookup(path)
	if !ok {
		return zero, Result{}, false
	}
	h, ok := t.handlers[res.Pattern]
	if !ok {
		return zero, Result{}, false
	}
	return h, res, true
}
