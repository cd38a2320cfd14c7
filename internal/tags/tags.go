// Package tags decomposes annotation text into the directives consumed by
// the type-graph builder: metadata pairs, renames, aliases, flatten, default
// presence and case-conversion policies.
//
// The same grammar is used by struct tags (`describe:"..."`, `meta:"..."`)
// and by `//describe:` and `//meta:` comment directives:
//
//	item  = key [ "=" value ]
//	items = item { "," item }
//
// Values containing commas must be quoted with single or double quotes.
package tags

import (
	"errors"
	"fmt"
	"strings"

	"struct-metadata/meta"
)

// Tag keys read from struct fields.
const (
	DescribeKey = "describe"
	MetaKey     = "meta"
	JSONKey     = "json"
)

// ErrSyntax is wrapped by every malformed-annotation error.
var ErrSyntax = errors.New("malformed annotation")

// Item is one key with an optional value.
type Item struct {
	Key      string
	Value    string
	HasValue bool
}

// SyntaxError describes where annotation text failed to parse.
type SyntaxError struct {
	Text   string
	Offset int
	Msg    string
}

// Error implements error.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s %q at offset %d: %s (expected key or key=value items "+
		"separated by commas; quote values containing commas)", ErrSyntax, e.Text, e.Offset, e.Msg)
}

// Unwrap returns ErrSyntax.
func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// Split parses annotation text into items, preserving order.
func Split(text string) ([]Item, error) {
	var items []Item

	s := &scanner{text: text}

	s.skipSpace()

	if s.done() {
		return nil, nil
	}

	for {
		item, err := s.item()
		if err != nil {
			return nil, err
		}

		items = append(items, item)

		s.skipSpace()

		if s.done() {
			return items, nil
		}

		if s.peek() != ',' {
			return nil, s.fail("expected ','")
		}

		s.pos++
		s.skipSpace()
	}
}

// Pairs parses metadata annotation text. A bare key stands for key=true.
func Pairs(text string) ([]meta.Pair, error) {
	items, err := Split(text)
	if err != nil {
		return nil, err
	}

	pairs := make([]meta.Pair, 0, len(items))
	for _, item := range items {
		value := item.Value
		if !item.HasValue {
			value = "true"
		}

		pairs = append(pairs, meta.Pair{Key: item.Key, Value: value})
	}

	if len(pairs) == 0 {
		return nil, nil
	}

	return pairs, nil
}

type scanner struct {
	text string
	pos  int
}

func (s *scanner) done() bool {
	return s.pos >= len(s.text)
}

func (s *scanner) peek() byte {
	return s.text[s.pos]
}

func (s *scanner) skipSpace() {
	for !s.done() && (s.peek() == ' ' || s.peek() == '\t') {
		s.pos++
	}
}

func (s *scanner) fail(msg string) error {
	return &SyntaxError{Text: s.text, Offset: s.pos, Msg: msg}
}

func (s *scanner) item() (Item, error) {
	start := s.pos
	for !s.done() && isKeyByte(s.peek()) {
		s.pos++
	}

	if s.pos == start {
		return Item{}, s.fail("expected key")
	}

	item := Item{Key: s.text[start:s.pos]}

	s.skipSpace()

	if s.done() || s.peek() != '=' {
		return item, nil
	}

	s.pos++
	s.skipSpace()

	value, err := s.value()
	if err != nil {
		return Item{}, err
	}

	item.Value = value
	item.HasValue = true

	return item, nil
}

func (s *scanner) value() (string, error) {
	if s.done() {
		return "", nil
	}

	quote := s.peek()
	if quote != '\'' && quote != '"' {
		start := s.pos
		for !s.done() && s.peek() != ',' {
			s.pos++
		}

		return strings.TrimSpace(s.text[start:s.pos]), nil
	}

	s.pos++

	var b strings.Builder

	for !s.done() {
		c := s.peek()
		s.pos++

		switch {
		case c == '\\' && !s.done():
			b.WriteByte(s.peek())
			s.pos++
		case c == quote:
			return b.String(), nil
		default:
			b.WriteByte(c)
		}
	}

	return "", s.fail("unterminated quoted value")
}

func isKeyByte(c byte) bool {
	return c == '_' || c == '-' || c == '.' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
