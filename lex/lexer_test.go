package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikitalita/shaderconv/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func nonSkippableKinds(toks []token.Token) []token.Kind {
	var out []token.Kind
	for _, t := range toks {
		if t.IsSkippable() {
			continue
		}
		out = append(out, t.Kind)
	}
	return out
}

func TestTokenizeEndsWithEOF(t *testing.T) {
	toks, err := Tokenize("")
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, token.EOF, toks[0].Kind)
}

func TestTokenizeKeywordsAndIdentifiers(t *testing.T) {
	toks, err := Tokenize("shader_type spatial;")
	require.NoError(t, err)
	got := nonSkippableKinds(toks)
	assert.Equal(t, []token.Kind{token.ShaderType, token.Identifier, token.Semicolon, token.EOF}, got)
}

func TestTokenizePreservesSkippablesByOffset(t *testing.T) {
	src := "int  x;"
	toks, err := Tokenize(src)
	require.NoError(t, err)
	require.True(t, len(toks) >= 4)
	for _, tok := range toks {
		if tok.Length > 0 {
			assert.LessOrEqual(t, tok.Offset+tok.Length, len(src))
		}
	}
}

func TestTokenizeLegacyFloatLiteralNoDecimal(t *testing.T) {
	toks, err := Tokenize("1f")
	require.NoError(t, err)
	require.Equal(t, token.FloatConstant, toks[0].Kind)
	assert.Equal(t, "1f", toks[0].Text)
	assert.Equal(t, 1.0, toks[0].Number)
}

func TestTokenizeFloatWithExponent(t *testing.T) {
	toks, err := Tokenize("1.5e-3")
	require.NoError(t, err)
	require.Equal(t, token.FloatConstant, toks[0].Kind)
	assert.InDelta(t, 1.5e-3, toks[0].Number, 1e-12)
}

func TestTokenizeUintSuffix(t *testing.T) {
	toks, err := Tokenize("42u")
	require.NoError(t, err)
	require.Equal(t, token.UintConstant, toks[0].Kind)
	assert.Equal(t, "42u", toks[0].Text)
}

func TestTokenizeLineAndBlockComments(t *testing.T) {
	toks, err := Tokenize("// a comment\n/* block */x")
	require.NoError(t, err)
	got := kinds(toks)
	assert.Contains(t, got, token.LineComment)
	assert.Contains(t, got, token.BlockComment)
	assert.Contains(t, got, token.Identifier)
}

func TestTokenizePreprocDirectiveLineContinuation(t *testing.T) {
	toks, err := Tokenize("#define FOO \\\n  1\nint x;")
	require.NoError(t, err)
	require.Equal(t, token.PreprocDirective, toks[0].Kind)
	assert.Contains(t, toks[0].Text, "FOO")
}

func TestTokenizeMultiCharOperatorsLongestMatch(t *testing.T) {
	toks, err := Tokenize("a <<= b >> c")
	require.NoError(t, err)
	got := nonSkippableKinds(toks)
	assert.Equal(t, []token.Kind{
		token.Identifier, token.OpAssignShiftLeft, token.Identifier,
		token.OpShiftRight, token.Identifier, token.EOF,
	}, got)
}

func TestTokenizeUnterminatedBlockCommentErrors(t *testing.T) {
	_, err := Tokenize("/* never closed")
	require.Error(t, err)
}

func TestTokenizeUnexpectedCharacterErrors(t *testing.T) {
	_, err := Tokenize("int x = $;")
	require.Error(t, err)
}

func TestTokenizeSamplerAndPrecisionKeywords(t *testing.T) {
	toks, err := Tokenize("lowp sampler2DArray tex;")
	require.NoError(t, err)
	got := nonSkippableKinds(toks)
	assert.Equal(t, []token.Kind{
		token.PrecisionLow, token.TypeSampler2DArray, token.Identifier, token.Semicolon, token.EOF,
	}, got)
}

func TestTokenizeLegacyHintAliasIsPlainIdentifier(t *testing.T) {
	toks, err := Tokenize("hint_albedo")
	require.NoError(t, err)
	require.Equal(t, token.Identifier, toks[0].Kind)
	assert.Equal(t, "hint_albedo", toks[0].Text)
}
