package config

import "testing"

func TestParseSigningKeys_SingleKey(t *testing.T) {
	keys, primary, err := parseSigningKeys("k1:secret", "")
	if err != nil {
		t.Fatalf("parseSigningKeys error: %v", err)
	}
	if primary != "k1" {
		t.Errorf("primary = %q, want k1 (implied by single key)", primary)
	}
	if keys["k1"] != "secret" {
		t.Errorf("keys[k1] = %q, want secret", keys["k1"])
	}
}

func TestParseSigningKeys_MultipleKeys(t *testing.T) {
	keys, primary, err := parseSigningKeys("k1:one, k2:two", "k2")
	if err != nil {
		t.Fatalf("parseSigningKeys error: %v", err)
	}
	if primary != "k2" {
		t.Errorf("primary = %q, want k2", primary)
	}
	if len(keys) != 2 || keys["k1"] != "one" || keys["k2"] != "two" {
		t.Errorf("keys = %v, want k1:one k2:two", keys)
	}
}

// Secrets may contain colons (e.g. base64 padding-free material with
// separators); only the first colon splits.
func TestParseSigningKeys_SecretWithColon(t *testing.T) {
	keys, _, err := parseSigningKeys("k1:ab:cd", "")
	if err != nil {
		t.Fatalf("parseSigningKeys error: %v", err)
	}
	if keys["k1"] != "ab:cd" {
		t.Errorf("keys[k1] = %q, want ab:cd", keys["k1"])
	}
}

func TestParseSigningKeys_Invalid(t *testing.T) {
	cases := []struct {
		name, raw, primary string
	}{
		{"empty", "", ""},
		{"missing secret", "k1:", ""},
		{"missing kid", ":secret", ""},
		{"no separator", "k1secret", ""},
		{"duplicate kid", "k1:a,k1:b", "k1"},
		{"multiple keys without primary", "k1:a,k2:b", ""},
		{"primary not in set", "k1:a", "k9"},
	}
	for _, c := range cases {
		if _, _, err := parseSigningKeys(c.raw, c.primary); err == nil {
			t.Errorf("%s: parseSigningKeys(%q, %q) expected error, got nil", c.name, c.raw, c.primary)
		}
	}
}
