package jwthandling

import (
	"testing"
	"time"
)

func TestAdminUserToken(t *testing.T) {
	secret := "test-sign-key"

	t.Run("round trip", func(t *testing.T) {
		token, err := GenerateNewAdminUserToken(time.Minute, "inbal", true, secret)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}

		claims, valid, err := ValidateAdminUserToken(token, secret)
		if err != nil || !valid {
			t.Errorf("unexpected validation result: valid=%t err=%v", valid, err)
			return
		}
		if claims.Username != "inbal" || !claims.IsOwner {
			t.Errorf("unexpected claims: %+v", claims)
		}
	})

	t.Run("wrong key rejected", func(t *testing.T) {
		token, err := GenerateNewAdminUserToken(time.Minute, "inbal", false, secret)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}

		_, valid, err := ValidateAdminUserToken(token, "other-key")
		if valid || err == nil {
			t.Errorf("unexpected validation result: valid=%t err=%v", valid, err)
		}
	})

	t.Run("expired token rejected", func(t *testing.T) {
		token, err := GenerateNewAdminUserToken(-time.Minute, "inbal", false, secret)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}

		_, valid, err := ValidateAdminUserToken(token, secret)
		if valid || err == nil {
			t.Errorf("unexpected validation result: valid=%t err=%v", valid, err)
		}
	})
}
