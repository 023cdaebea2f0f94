package crypto

import (
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$") {
		t.Fatalf("hash not PHC argon2id: %q", hash)
	}

	ok, err := VerifyPassword("correct horse battery staple", hash)
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if !ok {
		t.Fatal("VerifyPassword: correct password rejected")
	}

	ok, err = VerifyPassword("wrong", hash)
	if err != nil {
		t.Fatalf("VerifyPassword(wrong): %v", err)
	}
	if ok {
		t.Fatal("VerifyPassword: wrong password accepted")
	}
}

func TestEmptyPassword(t *testing.T) {
	// Clients may authenticate with no password at all; the empty string
	// still hashes and verifies.
	hash, err := HashPassword("")
	if err != nil {
		t.Fatalf("HashPassword(\"\"): %v", err)
	}
	ok, err := VerifyPassword("", hash)
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if !ok {
		t.Fatal("empty password did not verify against its own hash")
	}
	if ok, _ := VerifyPassword("x", hash); ok {
		t.Fatal("non-empty password verified against empty-password hash")
	}
}

func TestHashesAreSalted(t *testing.T) {
	h1, err := HashPassword("pw")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	h2, err := HashPassword("pw")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if h1 == h2 {
		t.Fatal("two hashes of the same password are identical; salt missing")
	}
}

func TestMalformedHash(t *testing.T) {
	malformed := []string{
		"",
		"not-a-hash",
		"$argon2id$v=19$m=65536,t=1,p=4$onlysalt",
		"$argon2i$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA", // wrong variant
		"$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA",   // bad base64
	}
	for _, h := range malformed {
		if ok, err := VerifyPassword("pw", h); err == nil || ok {
			t.Fatalf("VerifyPassword(%q): ok=%v err=%v, want error", h, ok, err)
		}
	}
}
