// File: routetrie/trie.go
// Package routetrie implements the trie-based route matcher: insertion and
// lookup of path patterns built from literal, ":param", and "*" segments.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package routetrie

import "strings"

// node owns its children exclusively. It carries its own segment text and,
// once a pattern terminates on it, the canonical pattern string — stored
// directly on the node instead of reconstructed via parent back-pointers
// (the redesign flagged in spec §9).
type node struct {
	segment    string
	children   []*node
	pattern    string
	isTerminal bool
}

// Trie holds inserted route patterns. It does not itself own handlers —
// see Tree, which composes a Trie with a canonical-path->handler map.
type Trie struct {
	root *node
}

// New builds an empty trie.
func New() *Trie {
	return &Trie{root: &node{}}
}

// splitSegments drops empty segments, normalising away leading/trailing
// slashes per spec §6.
func splitSegments(path string) []string {
	parts := strings.Split(path, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Insert adds pattern to the trie. Patterns sharing a prefix share that
// prefix's trie path; children are tried, at lookup time, in insertion
// order (spec §4.2 tie-break).
func (t *Trie) Insert(pattern string) {
	segments := splitSegments(pattern)
	cur := t.root
	for _, seg := range segments {
		var next *node
		for _, c := range cur.children {
			if c.segment == seg {
				next = c
				break
			}
		}
		if next == nil {
			next = &node{segment: seg}
			cur.children = append(cur.children, next)
		}
		cur = next
	}
	cur.pattern = canonicalPath(segments)
	cur.isTerminal = true
}

// canonicalPath rebuilds the "/seg1/seg2/..." string from the inserted
// segments; for the empty pattern (root "/") this is "/".
func canonicalPath(segments []string) string {
	if len(segments) == 0 {
		return "/"
	}
	return "/" + strings.Join(segments, "/")
}

// segmentMatches implements spec §4.2's match rule: literal equality, or
// the child segment is "*", or the child segment begins with ":".
func segmentMatches(childSegment, input string) bool {
	if childSegment == input {
		return true
	}
	if childSegment == "*" {
		return true
	}
	return strings.HasPrefix(childSegment, ":")
}

// Result is the outcome of a successful Lookup.
type Result struct {
	// Pattern is the canonical inserted path string, e.g. "/user/:id".
	Pattern string
	// Params maps parameter name to the matched segment text.
	Params map[string]string
}

// Lookup walks path through the trie, matching each requested segment
// against the first child that matches (spec §4.2's insertion-order
// tie-break). It preserves the repo's documented early-miss quirk: mid-walk,
// if a chosen child's children-count equals the total number of request
// segments, the lookup misses. The check is applied from the second
// matched segment onward; a first-level match is never rejected by it
// (see DESIGN.md).
func (t *Trie) Lookup(path string) (Result, bool) {
	segments := splitSegments(path)
	total := len(segments)

	cur := t.root
	params := map[string]string{}

	for i, seg := range segments {
		var matched *node
		for _, c := range cur.children {
			if segmentMatches(c.segment, seg) {
				matched = c
				break
			}
		}
		if matched == nil {
			return Result{}, false
		}
		if i > 0 && len(matched.children) == total {
			return Result{}, false
		}
		if strings.HasPrefix(matched.segment, ":") {
			params[matched.segment[1:]] = seg
		}
		cur = matched
	}

	if !cur.isTerminal {
		return Result{}, false
	}
	return Result{Pattern: cur.pattern, Params: params}, true
}
