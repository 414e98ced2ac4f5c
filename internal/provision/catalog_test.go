package provision

import "testing"

// ── Embedded catalog ───────────────────────────────────────────────────────

func TestLoadCatalog_EmbeddedDefaults(t *testing.T) {
	c, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("LoadCatalog error: %v", err)
	}

	ids := c.IDs()
	if len(ids) != 2 {
		t.Fatalf("catalog has %d seeds, want 2: %v", len(ids), ids)
	}

	seed, ok := c.Lookup("cochabamba")
	if !ok {
		t.Fatal("Lookup(cochabamba) not found")
	}
	if seed.Name != "Cochabamba" || seed.Department != "Cochabamba" {
		t.Errorf("cochabamba seed = %+v", seed)
	}

	if _, ok := c.Lookup("lapaz"); !ok {
		t.Error("Lookup(lapaz) not found")
	}
}

// The catalog is a closed set: anything outside it must not resolve.
func TestCatalog_UnknownIDs(t *testing.T) {
	c, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("LoadCatalog error: %v", err)
	}
	for _, id := range []string{"", "santacruz", "Cochabamba", "LAPAZ"} {
		if _, ok := c.Lookup(id); ok {
			t.Errorf("Lookup(%q) resolved, want miss", id)
		}
	}
}

func TestCatalog_DefaultIsFirstEntry(t *testing.T) {
	c, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("LoadCatalog error: %v", err)
	}
	if got := c.Default().ID; got != c.IDs()[0] {
		t.Errorf("Default().ID = %q, want first entry %q", got, c.IDs()[0])
	}
}

// ── parseCatalog validation ────────────────────────────────────────────────

func TestParseCatalog_Invalid(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not yaml", "{{{"},
		{"empty document", "municipalities: []"},
		{"missing name", "municipalities:\n  - id: x\n    department: X"},
		{"missing department", "municipalities:\n  - id: x\n    name: X"},
		{"duplicate id", "municipalities:\n  - {id: x, name: X, department: X}\n  - {id: x, name: Y, department: Y}"},
	}
	for _, c := range cases {
		if _, err := parseCatalog([]byte(c.raw)); err == nil {
			t.Errorf("%s: parseCatalog expected error, got nil", c.name)
		}
	}
}

func TestParseCatalog_PreservesOrder(t *testing.T) {
	raw := "municipalities:\n" +
		"  - {id: b, name: B, department: B}\n" +
		"  - {id: a, name: A, department: A}\n" +
		"  - {id: c, name: C, department: C}\n"
	c, err := parseCatalog([]byte(raw))
	if err != nil {
		t.Fatalf("parseCatalog error: %v", err)
	}
	ids := c.IDs()
	want := []string{"b", "a", "c"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("IDs() = %v, want %v", ids, want)
		}
	}
	if c.Default().ID != "b" {
		t.Errorf("Default().ID = %q, want b", c.Default().ID)
	}
}
