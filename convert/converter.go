package convert

import (
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nikitalita/shaderconv/lex"
	"github.com/nikitalita/shaderconv/token"
)

// MalformedSource reports a token stream that violates a structural
// invariant the converter depends on before any rewrite can begin (spec
// §7): `shader_type` is not the file's first token, or the source is too
// short to plausibly be a shader program.
type MalformedSource struct{ Reason string }

func (e *MalformedSource) Error() string { return "malformed source: " + e.Reason }

// Converter is the Deprecation Converter façade (spec §6): `new(source)`,
// `is_legacy()`, `convert()`, `emit()`, `error_text()`, `error_line()`.
// A single Converter instance owns its own Stream and declaration tables
// and holds no shared mutable state, so independent instances can be run
// concurrently from the same process (spec §5).
type Converter struct {
	AddComments    bool
	FailOnUnported bool
	AssumeCorrect  bool
	Log            zerolog.Logger

	// TraceID correlates this instance's log lines across a batch
	// conversion run; generated fresh per Converter so concurrent
	// instances never share one (spec §5).
	TraceID uuid.UUID

	source   string
	stream   *Stream
	mode     string
	malformed error

	converted bool
	output    string
	errText   string
	errLine   int
}

// New tokenizes source and prepares a Converter. Lexical errors surface
// lazily: IsLegacy returns false and Convert reports them, matching "is_legacy
// never raises" (spec §7).
func New(source string) *Converter {
	c := &Converter{
		FailOnUnported: true,
		AssumeCorrect:  true,
		Log:            zerolog.Nop(),
		TraceID:        uuid.New(),
		source:         source,
	}
	toks, err := lex.Tokenize(source)
	if err != nil {
		c.malformed = &MalformedSource{Reason: err.Error()}
		return c
	}
	if err := checkStructure(toks); err != nil {
		c.malformed = err
		return c
	}
	c.stream = NewStream(toks)
	c.mode = shaderMode(c.stream)
	return c
}

// checkStructure mirrors `preprocess_code()`'s two explicit guards: the
// file must tokenize to at least 3 tokens (`shader_type X;`), and
// `shader_type` must be the very first non-skippable token.
func checkStructure(toks []token.Token) error {
	significant := 0
	firstKind := token.EOF
	for _, t := range toks {
		if t.IsSkippable() || t.Kind == token.EOF {
			continue
		}
		if significant == 0 {
			firstKind = t.Kind
		}
		significant++
	}
	if significant < 3 {
		return &MalformedSource{Reason: "source has fewer than 3 significant tokens"}
	}
	if firstKind != token.ShaderType {
		return &MalformedSource{Reason: "shader_type must be the first token"}
	}
	return nil
}

func shaderMode(s *Stream) string {
	n := s.Front()
	if n.tok.Kind != token.ShaderType {
		return ""
	}
	n = s.NextSignificant(n)
	if n.tok.Kind != token.Identifier {
		return ""
	}
	return n.tok.Text
}

// IsLegacy implements the Dialect classifier (spec §4.3). It never raises:
// a malformed or unlexable source is reported as "not legacy" (spec §7).
func (c *Converter) IsLegacy() bool {
	if c.malformed != nil || c.stream == nil {
		return false
	}
	return IsLegacy(c.stream, c.mode)
}

// Convert runs the analyzer and rewriter over the token stream, populating
// ErrorText/ErrorLine on failure (spec §6 `convert() → bool`).
func (c *Converter) Convert() bool {
	if c.malformed != nil {
		c.errText = c.malformed.Error()
		return false
	}

	decls, err := newAnalyzer(c.stream, !c.AssumeCorrect).analyze()
	if err != nil {
		c.errText = err.Error()
		return false
	}

	rw := newRewriter(c.stream, decls, c.mode, Options{
		AddComments:    c.AddComments,
		FailOnUnported: c.FailOnUnported,
		AssumeCorrect:  c.AssumeCorrect,
	})
	if err := rw.run(); err != nil {
		c.errText = err.Error()
		if rw.firstErr != nil {
			c.errLine = rw.firstErr.Line
		}
		return false
	}

	c.output = renderTokens(c.stream.Tokens())
	c.converted = true
	c.Log.Debug().Str("trace", c.TraceID.String()).Str("mode", c.mode).Int("tokens", len(c.stream.Tokens())).Msg("converted shader source")
	return true
}

// Emit returns the current-dialect source produced by the last successful
// Convert call, or "" if conversion has not yet succeeded (spec §6).
func (c *Converter) Emit() string {
	if !c.converted {
		return ""
	}
	return c.output
}

// ErrorText returns the diagnostic recorded by the last failed Convert call.
func (c *Converter) ErrorText() string { return c.errText }

// ErrorLine returns the source line associated with ErrorText, or 0 if none.
func (c *Converter) ErrorLine() int { return c.errLine }

// renderTokens is the Stream's text-emission counterpart to NewStream:
// source-derived kinds (identifiers, literals, comments, preprocessor
// lines, and whitespace runs, which vary byte-for-byte and must round-trip
// exactly per spec §3.1) render their retained Text; every other kind
// renders its fixed literal spelling.
func renderTokens(toks []token.Token) string {
	var sb strings.Builder
	for _, t := range toks {
		switch t.Kind {
		case token.EOF, token.Empty:
			continue
		case token.Identifier, token.FloatConstant, token.IntConstant, token.UintConstant,
			token.BlockComment, token.LineComment, token.PreprocDirective:
			sb.WriteString(t.Text)
		case token.Tab, token.CR, token.Space, token.Newline:
			// Source-lexed runs carry their exact (possibly multi-char) Text;
			// synthesized whitespace (Offset == OffsetNew) falls back to the
			// kind's single-character spelling.
			if t.Text != "" {
				sb.WriteString(t.Text)
			} else {
				sb.WriteString(token.Spelling(t.Kind))
			}
		default:
			if s := token.Spelling(t.Kind); s != "" {
				sb.WriteString(s)
			} else {
				sb.WriteString(t.Text)
			}
		}
	}
	return sb.String()
}
