package syntax

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// ChromaSyntax tokenizes through a chroma lexer. Tokenize is pure; the
// applied token set is installed by the editor thread via SetTokens.
type ChromaSyntax struct {
	name   string
	lexer  chroma.Lexer
	tokens []Token
}

// NewChroma creates a syntax object backed by the named chroma lexer.
// Unknown lexer names fall back to chroma's plaintext analysis.
func NewChroma(lexerName string) *ChromaSyntax {
	lexer := lexers.Get(lexerName)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return &ChromaSyntax{
		name:  lexer.Config().Name,
		lexer: chroma.Coalesce(lexer),
	}
}

// Name returns the lexer's display name.
func (c *ChromaSyntax) Name() string { return c.name }

// Tokenize lexes a text snapshot into scope-tagged spans.
func (c *ChromaSyntax) Tokenize(text string) []Token {
	it, err := c.lexer.Tokenise(nil, text)
	if err != nil {
		return nil
	}

	var out []Token
	offset := 0
	for tok := it(); tok != chroma.EOF; tok = it() {
		length := len([]rune(tok.Value))
		category := tok.Type.Category()
		if category != chroma.Text && strings.TrimSpace(tok.Value) != "" {
			out = append(out, Token{
				Start: offset,
				End:   offset + length,
				Scope: strings.ToLower(category.String()),
			})
		}
		offset += length
	}
	return out
}

// Tokens returns the last applied token set.
func (c *ChromaSyntax) Tokens() []Token { return c.tokens }

// SetTokens installs a computed token set.
func (c *ChromaSyntax) SetTokens(tokens []Token) { c.tokens = tokens }

// ChromaProvider builds a Provider for the named chroma lexer.
func ChromaProvider(id, name string) Provider {
	return Provider{
		ID:   id,
		Name: name,
		Factory: func() Syntax {
			return NewChroma(id)
		},
	}
}

// RegisterDefaults registers chroma-backed providers for a set of common
// languages, keyed by their usual file extensions.
func RegisterDefaults(r *Registry) {
	r.Register([]string{"go"}, ChromaProvider("go", "Go"))
	r.Register([]string{"c", "h"}, ChromaProvider("c", "C"))
	r.Register([]string{"cpp", "cc", "cxx", "hpp"}, ChromaProvider("c++", "C++"))
	r.Register([]string{"py"}, ChromaProvider("python", "Python"))
	r.Register([]string{"js"}, ChromaProvider("javascript", "JavaScript"))
	r.Register([]string{"rs"}, ChromaProvider("rust", "Rust"))
	r.Register([]string{"md", "markdown"}, ChromaProvider("markdown", "Markdown"))
	r.Register([]string{"toml"}, ChromaProvider("toml", "TOML"))
	r.Register([]string{"yaml", "yml"}, ChromaProvider("yaml", "YAML"))
	r.Register([]string{"json"}, ChromaProvider("json", "JSON"))
	r.Register([]string{"lua"}, ChromaProvider("lua", "Lua"))
	r.Register([]string{"sh", "bash"}, ChromaProvider("bash", "Bash"))
}
