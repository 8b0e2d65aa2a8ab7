package utils

import "testing"

func TestVerifyCredentialPlaintext(t *testing.T) {
	if !VerifyCredential("hunter2", "hunter2") {
		t.Fatal("matching plaintext rejected")
	}
	if VerifyCredential("hunter2", "hunter3") {
		t.Fatal("mismatching plaintext accepted")
	}
	if VerifyCredential("hunter2", "") {
		t.Fatal("empty submission accepted")
	}
}

func TestVerifyCredentialBcrypt(t *testing.T) {
	hashed, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if !VerifyCredential(hashed, "hunter2") {
		t.Fatal("bcrypt-configured credential rejected")
	}
	if VerifyCredential(hashed, "hunter3") {
		t.Fatal("wrong password accepted against bcrypt hash")
	}
}
