package backend

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("backend-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestDecodeAuthUser(t *testing.T) {
	signed := signToken(t, jwt.MapClaims{
		"id":     "1",
		"email":  "a@b.com",
		"name":   "A",
		"roleId": "admin",
	})

	user, err := DecodeAuthUser(signed)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if user.ID != "1" || user.Email != "a@b.com" || user.Name != "A" || user.RoleID != "admin" {
		t.Fatalf("unexpected identity: %+v", user)
	}
}

func TestDecodeAuthUser_NoSignatureCheck(t *testing.T) {
	// The console reads claims without verifying; a token signed with any
	// key decodes the same.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": "7"})
	signed, err := token.SignedString([]byte("a-key-the-console-never-sees"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	user, err := DecodeAuthUser(signed)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if user.ID != "7" {
		t.Fatalf("unexpected id: %q", user.ID)
	}
}

func TestDecodeAuthUser_MissingClaimsAreEmpty(t *testing.T) {
	signed := signToken(t, jwt.MapClaims{"id": "1"})

	user, err := DecodeAuthUser(signed)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if user.Email != "" || user.Name != "" || user.RoleID != "" {
		t.Fatalf("missing claims should decode empty: %+v", user)
	}
}

func TestDecodeAuthUser_Malformed(t *testing.T) {
	for _, token := range []string{"", "garbage", "a.b", "!!.!!.!!"} {
		if _, err := DecodeAuthUser(token); err == nil {
			t.Fatalf("expected error for %q", token)
		}
	}
}
