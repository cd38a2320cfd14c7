// Package casing implements the case-conversion policies that a container
// can apply to every field or variant lacking an explicit rename.
package casing

import (
	"fmt"
	"strings"
	"unicode"
)

// Policy is a case-conversion policy.
type Policy int

const (
	// None leaves identifiers untouched.
	None Policy = iota
	Lower
	Upper
	Pascal
	Camel
	Snake
	ScreamingSnake
	Kebab
	ScreamingKebab
)

// policyNames maps the accepted spellings to policies. The canonical names
// spell themselves in their own case; the short forms are aliases.
var policyNames = map[string]Policy{
	"lowercase":            Lower,
	"lower":                Lower,
	"UPPERCASE":            Upper,
	"upper":                Upper,
	"PascalCase":           Pascal,
	"pascal":               Pascal,
	"camelCase":            Camel,
	"camel":                Camel,
	"snake_case":           Snake,
	"snake":                Snake,
	"SCREAMING_SNAKE_CASE": ScreamingSnake,
	"screaming_snake":      ScreamingSnake,
	"kebab-case":           Kebab,
	"kebab":                Kebab,
	"SCREAMING-KEBAB-CASE": ScreamingKebab,
	"screaming_kebab":      ScreamingKebab,
}

// Policies lists every conversion policy in a stable order.
func Policies() []Policy {
	return []Policy{Lower, Upper, Pascal, Camel, Snake, ScreamingSnake, Kebab, ScreamingKebab}
}

// Parse resolves a policy name.
func Parse(name string) (Policy, error) {
	if p, ok := policyNames[name]; ok {
		return p, nil
	}

	return None, fmt.Errorf("unknown case policy %q (expected one of lowercase, UPPERCASE, "+
		"PascalCase, camelCase, snake_case, SCREAMING_SNAKE_CASE, kebab-case, SCREAMING-KEBAB-CASE)", name)
}

// String returns the canonical policy name.
func (p Policy) String() string {
	switch p {
	case None:
		return ""
	case Lower:
		return "lowercase"
	case Upper:
		return "UPPERCASE"
	case Pascal:
		return "PascalCase"
	case Camel:
		return "camelCase"
	case Snake:
		return "snake_case"
	case ScreamingSnake:
		return "SCREAMING_SNAKE_CASE"
	case Kebab:
		return "kebab-case"
	case ScreamingKebab:
		return "SCREAMING-KEBAB-CASE"
	default:
		return "unknown"
	}
}

// Apply converts ident according to the policy.
func (p Policy) Apply(ident string) string {
	switch p {
	case Lower:
		return strings.ToLower(ident)
	case Upper:
		return strings.ToUpper(ident)
	case Pascal:
		return joinCapitalized(Tokenize(ident), true)
	case Camel:
		return joinCapitalized(Tokenize(ident), false)
	case Snake:
		return strings.ToLower(strings.Join(Tokenize(ident), "_"))
	case ScreamingSnake:
		return strings.ToUpper(strings.Join(Tokenize(ident), "_"))
	case Kebab:
		return strings.ToLower(strings.Join(Tokenize(ident), "-"))
	case ScreamingKebab:
		return strings.ToUpper(strings.Join(Tokenize(ident), "-"))
	default:
		return ident
	}
}

// Tokenize splits a CamelCase, camelCase, snake_case or kebab-case
// identifier into words.
// Examples:
//   - "OrderID" -> ["Order", "ID"]
//   - "XMLParser" -> ["XML", "Parser"]
//   - "order_line_item" -> ["order", "line", "item"]
func Tokenize(s string) []string {
	if s == "" {
		return nil
	}

	var tokens []string

	var current strings.Builder

	runes := []rune(s)
	for i := range runes {
		r := runes[i]

		if isSeparator(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}

			continue
		}

		if i > 0 && shouldStartNewToken(runes, i) && current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// KeyMatches reports whether an annotation key addresses a record field.
// A key matches the field's explicit tag name when one is set, otherwise the
// snake_case form of the field name or the field name itself, ignoring case.
func KeyMatches(fieldName, tagName, key string) bool {
	if tagName != "" {
		return tagName == key
	}

	return Snake.Apply(fieldName) == key || strings.EqualFold(fieldName, key)
}

func joinCapitalized(tokens []string, upperFirst bool) string {
	var b strings.Builder

	for i, tok := range tokens {
		lower := []rune(strings.ToLower(tok))
		if i > 0 || upperFirst {
			lower[0] = unicode.ToUpper(lower[0])
		}

		b.WriteString(string(lower))
	}

	return b.String()
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

// shouldStartNewToken determines if a new token should start at position i.
func shouldStartNewToken(runes []rune, i int) bool {
	r := runes[i]
	prevRune := runes[i-1]
	isUpper := unicode.IsUpper(r)
	isPrevUpper := unicode.IsUpper(prevRune)

	// "orderID" -> split before 'I'
	if isUpper && !isPrevUpper && !isSeparator(prevRune) {
		return true
	}

	// "XMLParser" -> "XML" + "Parser", split before 'P'
	hasNextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

	return isUpper && isPrevUpper && hasNextLower
}
