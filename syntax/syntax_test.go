package syntax

import (
	"strings"
	"testing"
)

func TestRegistry_RegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	r.Register([]string{"go"}, ChromaProvider("go", "Go"))

	p, ok := r.ByID("go")
	if !ok {
		t.Fatal("ByID missed a registered provider")
	}
	if p.Name != "Go" {
		t.Errorf("Name = %q", p.Name)
	}

	if _, ok := r.ByExtension("go"); !ok {
		t.Error("ByExtension missed a registered extension")
	}
	if _, ok := r.ByExtension(".GO"); !ok {
		t.Error("extension lookup should normalize case and leading dot")
	}
	if _, ok := r.ByID("rust"); ok {
		t.Error("ByID returned an unregistered provider")
	}
}

func TestRegistry_RegisterUpsert(t *testing.T) {
	r := NewRegistry()
	r.Register([]string{"md"}, ChromaProvider("markdown", "First"))
	r.Register([]string{"md"}, ChromaProvider("markdown", "Second"))

	p, _ := r.ByID("markdown")
	if p.Name != "Second" {
		t.Errorf("upsert kept the old provider: %q", p.Name)
	}
	if got := len(r.IDs()); got != 1 {
		t.Errorf("IDs count = %d, want 1", got)
	}
}

func TestRegisterDefaults(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	for _, ext := range []string{"go", "py", "rs", "md", "toml", "yaml", "json", "lua"} {
		if _, ok := r.ByExtension(ext); !ok {
			t.Errorf("no default provider for extension %q", ext)
		}
	}
}

func TestChromaSyntax_TokenizeGo(t *testing.T) {
	s := NewChroma("go")
	tokens := s.Tokenize("package main\n\nfunc main() {}\n")
	if len(tokens) == 0 {
		t.Fatal("no tokens for Go source")
	}

	var keyword bool
	for _, tok := range tokens {
		if tok.Start < 0 || tok.End <= tok.Start {
			t.Errorf("degenerate token %+v", tok)
		}
		if strings.HasPrefix(tok.Scope, "keyword") {
			keyword = true
		}
	}
	if !keyword {
		t.Error("expected a keyword token for 'package'/'func'")
	}
}

func TestChromaSyntax_TokenizePure(t *testing.T) {
	s := NewChroma("go")
	s.Tokenize("package main")
	if s.Tokens() != nil {
		t.Error("Tokenize must not install tokens on the receiver")
	}

	applied := []Token{{Start: 0, End: 7, Scope: "keyword"}}
	s.SetTokens(applied)
	if len(s.Tokens()) != 1 {
		t.Error("SetTokens did not install the token set")
	}
}

func TestChromaSyntax_RuneOffsets(t *testing.T) {
	s := NewChroma("go")
	src := "// héllo\npackage main"
	tokens := s.Tokenize(src)
	max := len([]rune(src))
	for _, tok := range tokens {
		if tok.End > max {
			t.Errorf("token %+v exceeds rune length %d", tok, max)
		}
	}
}

func TestNewChroma_UnknownFallsBack(t *testing.T) {
	s := NewChroma("no-such-language")
	if s.Name() == "" {
		t.Error("fallback lexer should still have a name")
	}
	// Must not panic and should produce a deterministic (possibly empty) set.
	_ = s.Tokenize("plain text")
}

func TestPlain(t *testing.T) {
	p := NewPlain()
	if got := p.Tokenize("anything"); got != nil {
		t.Errorf("Plain.Tokenize = %v, want nil", got)
	}
	p.SetTokens([]Token{{Start: 0, End: 1}})
	if p.Tokens() != nil {
		t.Error("Plain should discard token sets")
	}
}
