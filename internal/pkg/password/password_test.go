package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	plain := "correct-horse-battery"

	hash, err := Hash(plain)
	if err != nil {
		t.Fatalf("Hash() error: %v", err)
	}
	if hash == plain {
		t.Fatal("Hash() returned the plaintext")
	}

	if !Verify(plain, hash) {
		t.Error("Verify() rejected the correct password")
	}
	if Verify("wrong-password", hash) {
		t.Error("Verify() accepted a wrong password")
	}
	if Verify(plain, "not-a-bcrypt-hash") {
		t.Error("Verify() accepted a malformed hash")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"", false},
		{"short", false},
		{"1234567", false},
		{"12345678", true},
		{"a-much-longer-password", true},
	}

	for _, tt := range tests {
		if got := Validate(tt.password); got != tt.want {
			t.Errorf("Validate(%q) = %v, want %v", tt.password, got, tt.want)
		}
	}
}
