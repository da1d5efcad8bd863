package register

import "testing"

func TestStore_SetGet(t *testing.T) {
	s := NewStore()

	if _, ok := s.Get("a"); ok {
		t.Error("empty store returned a register")
	}

	s.Set("a", Register{Text: "hello", LineWise: true})
	r, ok := s.Get("a")
	if !ok {
		t.Fatal("register not found after Set")
	}
	if r.Text != "hello" || !r.LineWise {
		t.Errorf("got %+v", r)
	}
}

func TestStore_SetTextClearsLineWise(t *testing.T) {
	s := NewStore()
	s.Set("a", Register{Text: "x", LineWise: true})
	s.SetText("a", "y")

	r, _ := s.Get("a")
	if r.LineWise {
		t.Error("SetText should store a character-wise register")
	}
	if r.Text != "y" {
		t.Errorf("Text = %q, want %q", r.Text, "y")
	}
}

func TestStore_Overwrite(t *testing.T) {
	s := NewStore()
	s.SetText(`"`, "first")
	s.SetText(`"`, "second")

	r, _ := s.Get(`"`)
	if r.Text != "second" {
		t.Errorf("Text = %q, want %q", r.Text, "second")
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestStore_AllIsCopy(t *testing.T) {
	s := NewStore()
	s.SetText("a", "x")

	all := s.All()
	all["a"] = Register{Text: "mutated"}

	r, _ := s.Get("a")
	if r.Text != "x" {
		t.Error("All() exposed internal state")
	}
}
