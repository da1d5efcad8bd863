// Package register implements the named text slots used by editing modes to
// store and retrieve text fragments (yank/put, clipboard bridging).
package register

// Register is a single named text slot. LineWise records whether the text
// was captured as whole lines, which changes how a paste is applied.
type Register struct {
	Text     string
	LineWise bool
}

// Store holds registers keyed by name. Names are usually single characters
// ('a'-'z', '"', '+') but any string key is accepted.
//
// Store is not safe for concurrent use; it is owned by the editor and
// mutated only on the editor thread.
type Store struct {
	regs map[string]Register
}

// NewStore creates an empty register store.
func NewStore() *Store {
	return &Store{regs: make(map[string]Register)}
}

// Set stores a register under the given name, replacing any previous value.
func (s *Store) Set(name string, r Register) {
	s.regs[name] = r
}

// SetText stores character-wise text under the given name.
func (s *Store) SetText(name, text string) {
	s.regs[name] = Register{Text: text}
}

// Get returns the register for name. A missing register yields a zero
// Register and false; it is not an error.
func (s *Store) Get(name string) (Register, bool) {
	r, ok := s.regs[name]
	return r, ok
}

// All returns a copy of the register map.
func (s *Store) All() map[string]Register {
	out := make(map[string]Register, len(s.regs))
	for k, v := range s.regs {
		out[k] = v
	}
	return out
}

// Len returns the number of registers in the store.
func (s *Store) Len() int {
	return len(s.regs)
}
