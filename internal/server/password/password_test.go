// ABOUTME: Tests for password hashing
// ABOUTME: Verifies round-trip and rejection of wrong passwords

package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "secret1" {
		t.Error("hash must not equal the plaintext password")
	}
	if !Verify("secret1", hash) {
		t.Error("expected correct password to verify")
	}
	if Verify("wrong", hash) {
		t.Error("expected wrong password to fail verification")
	}
}

func TestVerify_InvalidHash(t *testing.T) {
	if Verify("secret1", "not-a-bcrypt-hash") {
		t.Error("expected invalid hash to fail verification")
	}
}
