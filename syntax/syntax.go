// Package syntax provides the highlighting-provider registry and the
// per-buffer syntax objects the editor rebuilds off-thread after edits.
//
// Tokenize is pure and safe to call from a background worker against a text
// snapshot; Tokens/SetTokens touch the shared object and belong to the
// editor thread only.
package syntax

import "strings"

// Token is one highlighted span, in rune offsets into the tokenized text.
type Token struct {
	Start int
	End   int
	// Scope is the token class (e.g., "keyword", "comment").
	Scope string
}

// Syntax is a per-buffer highlighting object.
type Syntax interface {
	// Name returns the provider name for status display.
	Name() string

	// Tokenize computes tokens for a text snapshot without mutating the
	// receiver. Safe to call off the editor thread.
	Tokenize(text string) []Token

	// Tokens returns the last applied token set.
	Tokens() []Token

	// SetTokens installs a computed token set. Editor thread only.
	SetTokens(tokens []Token)
}

// Factory produces a fresh per-buffer syntax object.
type Factory func() Syntax

// Provider maps a syntax identifier to a factory.
type Provider struct {
	// ID is the unique syntax identifier (e.g., "go", "markdown").
	ID string

	// Name is the human-readable provider name.
	Name string

	Factory Factory
}

// Registry indexes providers by identifier and by file extension. Both maps
// enforce key uniqueness via upsert: registering an existing key replaces
// the prior provider.
//
// Registry is owned by the editor and used only on the editor thread.
type Registry struct {
	byID  map[string]*Provider
	byExt map[string]*Provider
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:  make(map[string]*Provider),
		byExt: make(map[string]*Provider),
	}
}

// Register maps the provider to its ID and to each extension. Extensions
// are normalized: lowercase, no leading dot.
func (r *Registry) Register(extensions []string, p Provider) {
	prov := &p
	if p.ID != "" {
		r.byID[p.ID] = prov
	}
	for _, ext := range extensions {
		r.byExt[normalizeExt(ext)] = prov
	}
}

// ByID returns the provider for a syntax identifier.
func (r *Registry) ByID(id string) (*Provider, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// ByExtension returns the provider for a file extension.
func (r *Registry) ByExtension(ext string) (*Provider, bool) {
	p, ok := r.byExt[normalizeExt(ext)]
	return p, ok
}

// IDs returns the registered syntax identifiers.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	return ids
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// Plain is the fallback syntax producing no tokens.
type Plain struct{}

// NewPlain creates a plaintext syntax object.
func NewPlain() *Plain { return &Plain{} }

// Name returns "Plaintext".
func (p *Plain) Name() string { return "Plaintext" }

// Tokenize returns nil; plaintext has no highlighting.
func (p *Plain) Tokenize(string) []Token { return nil }

// Tokens returns nil.
func (p *Plain) Tokens() []Token { return nil }

// SetTokens discards the token set.
func (p *Plain) SetTokens([]Token) {}
