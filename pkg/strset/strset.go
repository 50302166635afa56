// Package strset implements the ordered short-string list used to hold
// collector include/exclude filters.
package strset

import "strings"

// node is one immutable link in the chain.
type node struct {
	val  string
	next *node
}

// List is an ordered, singly-linked sequence of short strings. It is
// built once (Split, or repeated Append/Prepend) at collector init and
// then only ever read.
type List struct {
	head *node
	tail *node
	n    int
}

// New returns an empty list.
func New() *List {
	return &List{}
}

// Split builds a list from input, cutting on any rune in cutset. Empty
// fields are dropped.
func Split(input, cutset string) *List {
	l := New()
	for _, f := range strings.FieldsFunc(input, func(r rune) bool {
		return strings.ContainsRune(cutset, r)
	}) {
		l.Append(f)
	}
	return l
}

// Append adds s to the end of the list.
func (l *List) Append(s string) {
	nd := &node{val: s}
	if l.tail == nil {
		l.head = nd
		l.tail = nd
	} else {
		l.tail.next = nd
		l.tail = nd
	}
	l.n++
}

// Prepend adds s to the front of the list.
func (l *List) Prepend(s string) {
	nd := &node{val: s, next: l.head}
	l.head = nd
	if l.tail == nil {
		l.tail = nd
	}
	l.n++
}

// Len returns the number of elements.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return l.n
}

// Contains reports whether key is present as an exact-match element.
func (l *List) Contains(key string) bool {
	if l == nil {
		return false
	}
	for n := l.head; n != nil; n = n.next {
		if n.val == key {
			return true
		}
	}
	return false
}

// Matches reports whether key equals an element, or an element ending in
// "*" whose prefix (everything before the "*") is a prefix of key.
func (l *List) Matches(key string) bool {
	if l == nil {
		return false
	}
	for n := l.head; n != nil; n = n.next {
		if n.val == key {
			return true
		}
		if strings.HasSuffix(n.val, "*") {
			prefix := n.val[:len(n.val)-1]
			if strings.HasPrefix(key, prefix) {
				return true
			}
		}
	}
	return false
}

// Join re-forms the list into a single string delimited by sep, mirroring
// the inverse of Split.
func (l *List) Join(sep string) string {
	if l == nil {
		return ""
	}
	parts := make([]string, 0, l.n)
	for n := l.head; n != nil; n = n.next {
		parts = append(parts, n.val)
	}
	return strings.Join(parts, sep)
}

// Slice returns the elements in order as a plain slice, for callers that
// need to range without touching the linked representation.
func (l *List) Slice() []string {
	if l == nil {
		return nil
	}
	out := make([]string, 0, l.n)
	for n := l.head; n != nil; n = n.next {
		out = append(out, n.val)
	}
	return out
}
