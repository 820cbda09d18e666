package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeBasic(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "single command", input: "info", want: []string{"info"}},
		{name: "plain arguments", input: "group audio secret", want: []string{"group", "audio", "secret"}},
		{name: "quoted argument keeps its quotes", input: `gmessage 1 "a b c"`, want: []string{"gmessage", "1", `"a b c"`}},
		{name: "quoted argument mid-line", input: `name "a b" x`, want: []string{"name", `"a b"`, "x"}},
		{name: "leading quoted token", input: `"x y" z`, want: []string{`"x y"`, "z"}},
		{name: "quoted token followed directly by text", input: `"a"x`, want: []string{`"a"`, "x"}},
		{name: "stops at the token limit", input: "a b c d e f", want: []string{"a", "b", "c", "d"}},
		{name: "trailing space yields empty token", input: "a ", want: []string{"a", ""}},
		{name: "empty input yields one empty token", input: "", want: []string{""}},
		{name: "empty quoted token", input: `cmd ""`, want: []string{"cmd", `""`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tokenize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokenizeUnterminatedQuote(t *testing.T) {
	_, err := Tokenize(`cmd "abc`)
	require.ErrorIs(t, err, ErrUnterminatedQuote)

	_, err = Tokenize(`cmd "a b" "oops`)
	require.ErrorIs(t, err, ErrUnterminatedQuote)
}

func TestTokenizeQuotedRoundTrip(t *testing.T) {
	args, err := Tokenize(`cmd "a b c"`)
	require.NoError(t, err)
	require.Len(t, args, 2)

	text, ok := unquote(args[1])
	require.True(t, ok)
	assert.Equal(t, "a b c", text)
}

func TestUnquoteRejectsPlainTokens(t *testing.T) {
	_, ok := unquote("plain")
	assert.False(t, ok)
}

func TestSessionNumberRule(t *testing.T) {
	tests := []struct {
		arg  string
		want int
		ok   bool
	}{
		{arg: "0", want: 0, ok: true},
		{arg: "3", want: 3, ok: true},
		{arg: "-2", want: -2, ok: true},
		{arg: "007", want: 7, ok: true},
		{arg: "abc", ok: false},
		{arg: "0x", ok: false},
		{arg: "", ok: false},
		{arg: "1.5", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, ok := sessionNumber(tt.arg)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
