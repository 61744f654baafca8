package auth

import "testing"

func TestHasher_HashAndVerify(t *testing.T) {
	h := NewHasher()

	hash, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "secret1" || hash == "" {
		t.Fatalf("hash must not be empty or the plaintext: %q", hash)
	}

	if !h.Verify("secret1", hash) {
		t.Error("Verify should accept the original password")
	}
	if h.Verify("secret2", hash) {
		t.Error("Verify should reject a different password")
	}
}

func TestHasher_DistinctSalts(t *testing.T) {
	h := NewHasher()

	h1, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	h2, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password should differ (distinct salts)")
	}
	if !h.Verify("same-password", h1) || !h.Verify("same-password", h2) {
		t.Error("both hashes should verify against the original password")
	}
}

func TestHasher_EmptyPassword(t *testing.T) {
	h := NewHasher()
	if _, err := h.Hash(""); err == nil {
		t.Error("expected error for empty password")
	}
}
