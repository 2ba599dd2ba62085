package ics

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeText(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "simple text", "simple text"},
		{"semicolon", "a;b", `a\;b`},
		{"comma", "a,b", `a\,b`},
		{"backslash", `a\b`, `a\\b`},
		{"newline becomes literal", "line1\nline2", `line1\nline2`},
		{"all reserved", "x;y,z\\\nw", `x\;y\,z\\\nw`},
		{"unicode untouched", "встреча 会议", "встреча 会议"},
		{"empty", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EscapeText(tc.input))
		})
	}
}

func TestEscapeUnescapeIdentity(t *testing.T) {
	inputs := []string{
		"plain",
		"a;b,c\\d",
		"multi\nline\ntext",
		`already\looking;escaped`,
		"смешанный текст, с запятой; и точкой с запятой",
		"",
	}

	for _, in := range inputs {
		assert.Equal(t, in, UnescapeText(EscapeText(in)), "input %q", in)
	}
}

func TestUnescapeUnknownSequencePassthrough(t *testing.T) {
	// чужие реализации могут прислать неизвестные escape-последовательности
	assert.Equal(t, `a\tb`, UnescapeText(`a\tb`))
	assert.Equal(t, `trailing\`, UnescapeText(`trailing\`))
	assert.Equal(t, "a\nb", UnescapeText(`a\Nb`))
}

func TestFoldLineShortUnchanged(t *testing.T) {
	line := "SUMMARY:short line"
	assert.Equal(t, line, FoldLine(line))

	exact := strings.Repeat("a", maxLineOctets)
	assert.Equal(t, exact, FoldLine(exact))
}

func TestFoldLineLimitsAndReversibility(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{"long ascii", "DESCRIPTION:" + strings.Repeat("abcdefghij", 30)},
		{"long cyrillic", "SUMMARY:" + strings.Repeat("длинное описание ", 20)},
		{"long cjk", "DESCRIPTION:" + strings.Repeat("世界", 100)},
		{"barely over", strings.Repeat("x", maxLineOctets+1)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			folded := FoldLine(tc.input)

			for _, physical := range strings.Split(folded, "\r\n") {
				assert.LessOrEqual(t, len(physical), maxLineOctets)
			}
			assert.True(t, utf8.ValidString(folded))

			unfolded := UnfoldLines(folded)
			require.Len(t, unfolded, 1)
			assert.Equal(t, tc.input, unfolded[0])
		})
	}
}

func TestUnfoldLines(t *testing.T) {
	content := "FIRST:one\r\nSECOND:two starts here\r\n  and continues\r\n\tand tab continuation\r\nTHIRD:three"
	lines := UnfoldLines(content)

	require.Len(t, lines, 3)
	assert.Equal(t, "FIRST:one", lines[0])
	assert.Equal(t, "SECOND:two starts here and continuesand tab continuation", lines[1])
	assert.Equal(t, "THIRD:three", lines[2])
}

func TestUnfoldLinesBareLF(t *testing.T) {
	lines := UnfoldLines("A:1\nB:2\n folded")
	require.Len(t, lines, 2)
	assert.Equal(t, "B:2folded", lines[1])
}
