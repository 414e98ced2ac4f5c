package auth_test

import (
	"testing"

	"cemse/placement-service/internal/auth"
)

// The plaintext echoed back at creation time must verify against the
// persisted hash.
func TestHasher_RoundTrip(t *testing.T) {
	h := auth.NewHasher()

	hash, err := h.Hash("s3cret-pass")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("Hash must not return the plaintext")
	}
	if !h.Check("s3cret-pass", hash) {
		t.Error("Check(correct password) = false, want true")
	}
	if h.Check("wrong-pass", hash) {
		t.Error("Check(wrong password) = true, want false")
	}
}

// Nothing may ever authenticate against a locked synthesized account.
func TestLockedPasswordHash_NeverVerifies(t *testing.T) {
	h := auth.NewHasher()
	for _, pw := range []string{"", "!", "password", auth.LockedPasswordHash} {
		if h.Check(pw, auth.LockedPasswordHash) {
			t.Errorf("Check(%q, locked hash) = true, want false", pw)
		}
	}
}
