package middleware_test

import (
	"context"
	"testing"

	"github.com/aretw0/formwise/pkg/domain"
	"github.com/aretw0/formwise/pkg/persistence/middleware"
)

func TestPIIMiddleware_Masking(t *testing.T) {
	// Setup
	underlyingStore := NewMockStore()
	// Mask fields containing "password" or "ssn"
	mw := middleware.NewPIIMiddleware([]string{"password", "ssn"})
	secureStore := mw(underlyingStore)

	ctx := context.Background()
	sessionID := "pii-session"
	values := domain.Values{
		"username":      "jdoe",
		"user_password": "secret123",
		"ssn_number":    "999-99-9999",
		"safe_data":     "public",
	}

	// 1. Put
	if err := secureStore.Put(ctx, sessionID, "step", values); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	// Verify in-memory values are NOT modified (immutability check)
	if values["user_password"] != "secret123" {
		t.Error("Middleware modified original values in memory!")
	}

	// 2. Get from underlying store (Should be masked)
	stored, err := underlyingStore.Get(ctx, sessionID, "step")
	if err != nil {
		t.Fatalf("Underlying get failed: %v", err)
	}

	// Check masking
	if stored["username"] != "jdoe" {
		t.Error("Username shouldn't be masked")
	}
	if stored["user_password"] != "***" {
		t.Errorf("Password should be masked, got: %v", stored["user_password"])
	}
	if stored["ssn_number"] != "***" {
		t.Errorf("SSN should be masked, got: %v", stored["ssn_number"])
	}
	if stored["safe_data"] != "public" {
		t.Error("Unmatched field shouldn't be masked")
	}
}
