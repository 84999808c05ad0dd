package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSkippablePreservesCommentsAndPreproc(t *testing.T) {
	skippable := []Kind{Tab, CR, Space, Newline, BlockComment, LineComment, PreprocDirective}
	for _, k := range skippable {
		assert.True(t, Token{Kind: k}.IsSkippable(), "%v should be skippable", k)
	}
	notSkippable := []Kind{Identifier, FloatConstant, ShaderType, Semicolon}
	for _, k := range notSkippable {
		assert.False(t, Token{Kind: k}.IsSkippable(), "%v should not be skippable", k)
	}
}

func TestIsNumberLiteral(t *testing.T) {
	for _, k := range []Kind{FloatConstant, IntConstant, UintConstant} {
		assert.True(t, Token{Kind: k}.IsNumberLiteral())
	}
	assert.False(t, Token{Kind: Identifier}.IsNumberLiteral())
}

func TestIsDatatypeCoversScalarVectorMatrixSampler(t *testing.T) {
	for _, k := range []Kind{TypeFloat, TypeVec3, TypeMat4, TypeSampler2D, TypeUSampler3D} {
		assert.True(t, IsDatatype(k), "%v should be a datatype", k)
	}
	assert.False(t, IsDatatype(Identifier))
}

func TestIsSamplerTypeIsStrictSubsetOfDatatype(t *testing.T) {
	for k := range datatypeKinds {
		if IsSamplerType(k) {
			require.True(t, IsDatatype(k), "%v: every sampler type must also be a datatype", k)
		}
	}
	assert.True(t, IsSamplerType(TypeSamplerCubeArray))
	assert.False(t, IsSamplerType(TypeFloat))
}

func TestIsHint(t *testing.T) {
	assert.True(t, IsHint(HintScreenTexture))
	assert.True(t, IsHint(HintSourceColor))
	assert.False(t, IsHint(Identifier))
}

func TestIsPrecisionAndInterpolation(t *testing.T) {
	assert.True(t, IsPrecision(PrecisionLow))
	assert.True(t, IsPrecision(PrecisionHigh))
	assert.False(t, IsPrecision(TypeFloat))

	assert.True(t, IsInterpolation(InterpolationFlat))
	assert.False(t, IsInterpolation(PrecisionLow))
}

// TestSpellingDisjointFromSourceDerivedKinds checks the documented
// contract of Spelling: identifiers, number literals, comments,
// preprocessor lines, and the sentinel kinds never carry a fixed
// spelling, since their text is entirely source-derived.
func TestSpellingDisjointFromSourceDerivedKinds(t *testing.T) {
	for _, k := range []Kind{Empty, Identifier, FloatConstant, IntConstant, UintConstant,
		BlockComment, LineComment, PreprocDirective, EOF, Error} {
		assert.Equal(t, "", Spelling(k), "%v should have no fixed spelling", k)
	}
	assert.Equal(t, ";", Spelling(Semicolon))
}

func TestIsKeywordExcludesOperatorsAndPunctuation(t *testing.T) {
	assert.True(t, IsKeyword(ShaderType))
	assert.False(t, IsKeyword(Semicolon))
	assert.False(t, IsKeyword(OpAssign))
	assert.False(t, IsKeyword(ParenthesisOpen))
}
