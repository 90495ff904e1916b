// Copyright (c) 2026 ircmark contributors
// released under the ISC license

package words

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func texts(text string, spans []Span) (result []string) {
	for _, span := range spans {
		result = append(result, span.Text(text))
	}
	return
}

func TestTokenize(t *testing.T) {
	cases := []struct {
		input string
		words []string
	}{
		{"", nil},
		{"   ", nil},
		{"it's a test-case!", []string{"it's", "a", "test-case"}},
		{"hello, world", []string{"hello", "world"}},
		{"abc123def", []string{"abc", "def"}},
		{"'quoted' -dash- trail-", []string{"quoted", "dash", "trail"}},
		{"don’t", []string{"don’t"}},
		{"naïve café Straße", []string{"naïve", "café", "Straße"}},
		{"café", []string{"café"}},
		{"привет мир", []string{"привет", "мир"}},
		{"42 --- ''", nil},
		{"http://example.com/path", []string{"http", "example", "com", "path"}},
	}
	for _, c := range cases {
		assert.Equal(t, c.words, texts(c.input, Tokenize(c.input)), "input %q", c.input)
	}
}

func TestTokenizeOffsets(t *testing.T) {
	text := "é it's"
	spans := Tokenize(text)
	require.Len(t, spans, 2)
	assert.Equal(t, Span{Start: 0, End: 2, Correct: true}, spans[0])
	assert.Equal(t, Span{Start: 3, End: 7, Correct: true}, spans[1])

	// spans are ordered and disjoint
	text = "one two-three four's five"
	spans = Tokenize(text)
	for i := 1; i < len(spans); i++ {
		assert.Less(t, spans[i-1].End, spans[i].Start)
	}
}

func TestAnnotate(t *testing.T) {
	text := "good bad good"
	spans := Annotate(text, func(word string) bool { return word != "bad" })
	require.Len(t, spans, 3)
	assert.True(t, spans[0].Correct)
	assert.False(t, spans[1].Correct)
	assert.True(t, spans[2].Correct)
}

func TestAt(t *testing.T) {
	text := "hello brave world"
	span, ok := At(text, 0)
	require.True(t, ok)
	assert.Equal(t, "hello", span.Text(text))

	span, ok = At(text, 5)
	require.True(t, ok)
	assert.Equal(t, "hello", span.Text(text), "cursor just after a word")

	span, ok = At(text, 8)
	require.True(t, ok)
	assert.Equal(t, "brave", span.Text(text))

	span, ok = At(text, len(text))
	require.True(t, ok)
	assert.Equal(t, "world", span.Text(text))

	_, ok = At("a  b", 2)
	assert.False(t, ok)
	_, ok = At("", 0)
	assert.False(t, ok)
}

func TestReplace(t *testing.T) {
	text := "teh cat"
	span, ok := At(text, 1)
	require.True(t, ok)
	out, cursor := Replace(text, span, "the")
	assert.Equal(t, "the cat", out)
	assert.Equal(t, 3, cursor)

	text = "a wrod here"
	span, _ = At(text, 3)
	out, cursor = Replace(text, span, "word")
	assert.Equal(t, "a word here", out)
	assert.Equal(t, "a word", out[:cursor])

	out, cursor = Replace("short", Span{Start: 3, End: 10}, "x")
	assert.Equal(t, "short", out)
	assert.Equal(t, 5, cursor)
}

func TestTokenizeLongInput(t *testing.T) {
	text := strings.Repeat("word ", 1000)
	assert.Len(t, Tokenize(text), 1000)
}
