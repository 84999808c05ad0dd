// Package convert implements the Dialect classifier and Rewriter (spec
// §4.3, §4.4): a token-stream migration from the legacy 3.x shader DSL
// dialect to the current 4.x dialect.
package convert

import "github.com/nikitalita/shaderconv/token"

// node is one element of the intrusive doubly-linked token list (design
// note "Intrusive token list"). Rewrite rules mutate the list in place —
// insertion and removal are O(1) and never invalidate a held *node.
type node struct {
	tok        token.Token
	prev, next *node
}

// Stream is a mutable, navigable token list with skip-aware traversal
// (spec §3.1: tabs/spaces/CRs/newlines/comments/preprocessor directives
// are "skippable" but are never dropped — only stepped over). Every
// Stream is terminated by sentinel EOF nodes at both ends so navigation
// never runs off the list.
type Stream struct {
	front, back *node
	count       int
}

// NewStream builds a Stream from a flat token slice, as produced by
// package lex. The returned front/back sentinels both carry Kind EOF.
func NewStream(toks []token.Token) *Stream {
	s := &Stream{}
	head := &node{tok: token.Token{Kind: token.EOF, Offset: token.OffsetNew}}
	tail := &node{tok: token.Token{Kind: token.EOF, Offset: token.OffsetNew}}
	head.next, tail.prev = tail, head
	s.front, s.back = head, tail
	for _, t := range toks {
		if t.Kind == token.EOF {
			continue
		}
		s.insertBefore(tail, t)
	}
	return s
}

// Front returns the first real (non-sentinel) node, or the back sentinel
// if the stream is empty.
func (s *Stream) Front() *node { return s.front.next }

// Back returns the back sentinel.
func (s *Stream) Back() *node { return s.back }

// AtEnd reports whether n is the back sentinel.
func (s *Stream) AtEnd(n *node) bool { return n == s.back }

// Tokens materializes the stream back into a flat slice, in order,
// including skippable tokens — the round-trip counterpart of NewStream.
func (s *Stream) Tokens() []token.Token {
	out := make([]token.Token, 0, s.count)
	for n := s.front.next; n != s.back; n = n.next {
		out = append(out, n.tok)
	}
	return out
}

// insertBefore splices a fresh node holding t, exactly as given,
// immediately before at; InsertBefore is the wrapper that marks the
// offset as synthesized.
func (s *Stream) insertBefore(at *node, t token.Token) *node {
	n := &node{tok: t, prev: at.prev, next: at}
	at.prev.next = n
	at.prev = n
	s.count++
	return n
}

// InsertBefore inserts a new synthesized token immediately before at and
// returns the new node. The inserted token's Offset is forced to
// token.OffsetNew regardless of what the caller passed, matching the
// "synthesized tokens are never byte-addressed" invariant (spec §3.1).
func (s *Stream) InsertBefore(at *node, t token.Token) *node {
	t.Offset = token.OffsetNew
	return s.insertBefore(at, t)
}

// InsertAfter inserts a new synthesized token immediately after at.
func (s *Stream) InsertAfter(at *node, t token.Token) *node {
	return s.InsertBefore(at.next, t)
}

// InsertManyAfter inserts a sequence of synthesized tokens, in order,
// immediately after at, and returns the node of the last one inserted —
// the Vector-argument overload of `insert_after` in the original
// converter.
func (s *Stream) InsertManyAfter(at *node, toks []token.Token) *node {
	cur := at
	for _, t := range toks {
		cur = s.InsertAfter(cur, t)
	}
	return cur
}

// Remove unlinks n from the stream and returns the node that followed it
// (the back sentinel if n was last). Removing a sentinel is a no-op that
// returns the sentinel itself.
func (s *Stream) Remove(n *node) *node {
	if n == s.front || n == s.back {
		return n
	}
	next := n.next
	n.prev.next = n.next
	n.next.prev = n.prev
	s.count--
	return next
}

// RemoveRange removes every node from start up to (but not including)
// end, and returns end.
func (s *Stream) RemoveRange(start, end *node) *node {
	for start != end && start != s.back {
		start = s.Remove(start)
	}
	return end
}

// ReplaceCurrent swaps n's token in place for t, preserving n's position
// and link pointers (`replace_curr` in the original converter) — used by
// rename rules that keep the node identity stable for any already-held
// reference.
func (s *Stream) ReplaceCurrent(n *node, t token.Token) {
	n.tok = t
}

// NextSignificant returns the next node after n that is not skippable,
// or the back sentinel (`_get_next_token_ptr` skip loop).
func (s *Stream) NextSignificant(n *node) *node {
	for n.next != s.back && n.next.tok.IsSkippable() {
		n = n.next
	}
	if n.next == s.back {
		return s.back
	}
	return n.next
}

// PrevSignificant returns the previous node before n that is not
// skippable, or the front sentinel (`_get_prev_token_ptr` skip loop).
func (s *Stream) PrevSignificant(n *node) *node {
	for n.prev != s.front && n.prev.tok.IsSkippable() {
		n = n.prev
	}
	if n.prev == s.front {
		return s.front
	}
	return n.prev
}

// PeekKind reports the Kind of the next significant token after n,
// without moving any cursor (`_peek_tk_type`).
func (s *Stream) PeekKind(n *node) token.Kind {
	return s.NextSignificant(n).tok.Kind
}

// closureDelims maps an opening punctuation kind to its matching close.
var closureDelims = map[token.Kind]token.Kind{
	token.ParenthesisOpen: token.ParenthesisClose,
	token.BracketOpen:     token.BracketClose,
	token.CurlyBracketOpen: token.CurlyBracketClose,
}

// EndOfClosure implements `_get_end_of_closure`: starting just after an
// opening bracket/paren/brace, it returns the node holding the matching
// close, tracking nested depth. If open is not itself a bracket/paren/
// brace kind, it instead scans forward to the first top-level comma or
// semicolon, or to a closing paren/bracket/brace that has no opener after
// afterOpen, and returns that terminator node (a "statement boundary"
// closure, used by the rewriter's statementEnd). Returns the back
// sentinel (ok=false) on EOF or an ERROR token before a match is found.
func (s *Stream) EndOfClosure(openKind token.Kind, afterOpen *node) (*node, bool) {
	if closeKind, ok := closureDelims[openKind]; ok {
		depth := 1
		n := afterOpen
		for n != s.back {
			switch n.tok.Kind {
			case openKind:
				depth++
			case closeKind:
				depth--
				if depth == 0 {
					return n, true
				}
			case token.Error:
				return s.back, false
			}
			n = s.NextSignificant(n)
		}
		return s.back, false
	}
	depth := 0
	n := afterOpen
	for n != s.back {
		switch n.tok.Kind {
		case token.ParenthesisOpen, token.BracketOpen, token.CurlyBracketOpen:
			depth++
		case token.ParenthesisClose, token.BracketClose, token.CurlyBracketClose:
			if depth == 0 {
				return n, true
			}
			depth--
		case token.Comma, token.Semicolon:
			if depth == 0 {
				return n, true
			}
		case token.Error:
			return s.back, false
		}
		n = s.NextSignificant(n)
	}
	return s.back, false
}
