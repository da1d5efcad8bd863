package mode

import "testing"

type fakeMode struct {
	name string
}

func (m *fakeMode) Name() string { return m.name }

func (m *fakeMode) Begin(*Context) {}

func (m *fakeMode) HandleKey(*Context, KeyEvent) {}

func TestManager_FirstGlobalBecomesCurrent(t *testing.T) {
	m := NewManager()
	if m.Current() != nil {
		t.Error("empty manager has a current mode")
	}

	first := &fakeMode{name: "first"}
	second := &fakeMode{name: "second"}
	m.RegisterGlobal(first)
	m.RegisterGlobal(second)

	if m.Current() != first {
		t.Error("first registered mode should be current")
	}
}

func TestManager_RegisterGlobalUpsert(t *testing.T) {
	m := NewManager()
	old := &fakeMode{name: "vim"}
	replacement := &fakeMode{name: "vim"}
	m.RegisterGlobal(old)
	m.RegisterGlobal(replacement)

	if m.Global("vim") != replacement {
		t.Error("re-registration under the same name should replace")
	}
	if got := m.GlobalNames(); len(got) != 1 {
		t.Errorf("GlobalNames = %v, want one entry", got)
	}
}

func TestManager_SetCurrentUnknown(t *testing.T) {
	m := NewManager()
	known := &fakeMode{name: "known"}
	m.RegisterGlobal(known)

	if err := m.SetCurrent("nope"); err == nil {
		t.Error("selecting an unknown mode should fail")
	}
	if m.Current() != known {
		t.Error("failed selection changed the current mode")
	}
}

func TestManager_Resolve(t *testing.T) {
	m := NewManager()
	global := &fakeMode{name: "global"}
	goMode := &fakeMode{name: "go-mode"}
	m.RegisterGlobal(global)
	m.RegisterBuffer(".GO", goMode)

	if got := m.Resolve("go"); got != goMode {
		t.Error("extension with a buffer mode should resolve to it")
	}
	if got := m.Resolve(".go"); got != goMode {
		t.Error("extension normalization failed for leading dot")
	}
	if got := m.Resolve("txt"); got != global {
		t.Error("extension without a buffer mode should fall back to global")
	}
}

func TestManager_BufferModeUpsert(t *testing.T) {
	m := NewManager()
	a := &fakeMode{name: "a"}
	b := &fakeMode{name: "b"}
	m.RegisterBuffer("md", a)
	m.RegisterBuffer("md", b)

	if m.BufferMode("md") != b {
		t.Error("buffer mode registration should be upsert")
	}
}
