package casing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicy_Apply(t *testing.T) {
	tests := []struct {
		policy   Policy
		expected string
	}{
		{None, "OrderLineItem"},
		{Lower, "orderlineitem"},
		{Upper, "ORDERLINEITEM"},
		{Pascal, "OrderLineItem"},
		{Camel, "orderLineItem"},
		{Snake, "order_line_item"},
		{ScreamingSnake, "ORDER_LINE_ITEM"},
		{Kebab, "order-line-item"},
		{ScreamingKebab, "ORDER-LINE-ITEM"},
	}

	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.policy.Apply("OrderLineItem"))
		})
	}
}

func TestPolicy_ApplyAcronyms(t *testing.T) {
	assert.Equal(t, "order_id", Snake.Apply("OrderID"))
	assert.Equal(t, "xml_parser", Snake.Apply("XMLParser"))
	assert.Equal(t, "OrderLineItem", Pascal.Apply("order_line_item"))
	assert.Equal(t, "orderId", Camel.Apply("OrderID"))
	assert.Equal(t, "http-server", Kebab.Apply("HTTPServer"))
	assert.Empty(t, Snake.Apply(""))
}

func TestParse(t *testing.T) {
	for _, p := range Policies() {
		parsed, err := Parse(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, parsed)
	}

	p, err := Parse("snake")
	require.NoError(t, err)
	assert.Equal(t, Snake, p)

	_, err = Parse("Title Case")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "snake_case")
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"", nil},
		{"ID", []string{"ID"}},
		{"OrderID", []string{"Order", "ID"}},
		{"XMLParser", []string{"XML", "Parser"}},
		{"userName", []string{"user", "Name"}},
		{"order_line_item", []string{"order", "line", "item"}},
		{"kebab-case-name", []string{"kebab", "case", "name"}},
		{"__leading", []string{"leading"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Tokenize(tt.input))
		})
	}
}

func TestKeyMatches(t *testing.T) {
	assert.True(t, KeyMatches("MaxLength", "", "max_length"))
	assert.True(t, KeyMatches("MaxLength", "", "maxlength"))
	assert.True(t, KeyMatches("MaxLength", "", "MaxLength"))
	assert.False(t, KeyMatches("MaxLength", "", "max-length"))
	assert.True(t, KeyMatches("MaxLength", "limit", "limit"))
	assert.False(t, KeyMatches("MaxLength", "limit", "max_length"))
}
