package editor

import (
	"path/filepath"

	"github.com/dshills/quill/buffer"
	"github.com/dshills/quill/syntax"
	"github.com/dshills/quill/work"
)

// RegisterSyntaxFactory maps a provider to its identifier and file
// extensions. Registering an existing identifier or extension replaces the
// prior binding.
func (e *Editor) RegisterSyntaxFactory(extensions []string, p syntax.Provider) {
	e.syntaxes.Register(extensions, p)
}

// SyntaxRegistry returns the provider registry.
func (e *Editor) SyntaxRegistry() *syntax.Registry { return e.syntaxes }

// setBufferSyntax binds a buffer to the provider matching its path
// extension, falling back to plaintext.
func (e *Editor) setBufferSyntax(b *buffer.Buffer) {
	ext := filepath.Ext(b.Path())
	if p, ok := e.syntaxes.ByExtension(ext); ok {
		b.SetSyntaxID(p.ID)
		e.bufSyntax[b.Handle()] = p.Factory()
		return
	}
	b.SetSyntaxID("")
	e.bufSyntax[b.Handle()] = syntax.NewPlain()
}

// SetBufferSyntaxID binds a buffer to a provider by identifier. Unknown
// identifiers fall back to plaintext.
func (e *Editor) SetBufferSyntaxID(b *buffer.Buffer, id string) {
	if p, ok := e.syntaxes.ByID(id); ok {
		b.SetSyntaxID(p.ID)
		e.bufSyntax[b.Handle()] = p.Factory()
	} else {
		b.SetSyntaxID("")
		e.bufSyntax[b.Handle()] = syntax.NewPlain()
	}
	e.scheduleSyntaxRebuild(b)
}

// BufferSyntax returns the syntax object bound to a buffer, or nil.
func (e *Editor) BufferSyntax(b *buffer.Buffer) syntax.Syntax {
	if b == nil {
		return nil
	}
	return e.bufSyntax[b.Handle()]
}

// scheduleSyntaxRebuild tokenizes the buffer off-thread against a text
// snapshot and applies the tokens on the editor thread. Results arriving
// after the buffer was retired or edited again are discarded; the newer edit
// has its own rebuild in flight.
func (e *Editor) scheduleSyntaxRebuild(b *buffer.Buffer) {
	syn := e.bufSyntax[b.Handle()]
	if syn == nil {
		return
	}

	handle := b.Handle()
	version := b.Version()
	text := b.Text()

	_, err := e.pool.SubmitThen(func() (any, error) {
		return syn.Tokenize(text), nil
	}, func(job *work.Job) {
		result, jobErr, _ := job.Result()
		if jobErr != nil {
			return
		}
		tokens, _ := result.([]syntax.Token)
		e.enqueueApply(func() {
			cur := e.byHandle[handle]
			if cur == nil || cur.Version() != version {
				return
			}
			if s := e.bufSyntax[handle]; s != nil {
				s.SetTokens(tokens)
			}
			e.RequestRefresh()
		})
	})
	if err != nil {
		e.log.Debugf("syntax rebuild for %s not scheduled: %v", b.Name(), err)
		return
	}

	// Inline pools complete before SubmitThen returns; drain so the new
	// tokens are visible to the caller immediately.
	if e.pool.Inline() {
		e.drain()
	}
}
