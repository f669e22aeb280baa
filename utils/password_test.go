package utils

import "testing"

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret" {
		t.Fatal("hash should not equal the plaintext")
	}
	if !CheckPasswordHash("s3cret", hash) {
		t.Fatal("correct password should verify")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Fatal("wrong password should not verify")
	}
}
