package db

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolationPgx(t *testing.T) {
	err := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}

	if !IsUniqueViolation(err, "") {
		t.Fatalf("expected unique violation for 23505")
	}
	if !IsUniqueViolation(err, "users_email_key") {
		t.Fatalf("expected constraint match")
	}
	if IsUniqueViolation(err, "food_entries_pkey") {
		t.Fatalf("expected mismatch for different constraint")
	}
}

func TestIsUniqueViolationFallsBackToMessage(t *testing.T) {
	err := fmt.Errorf("ERROR: duplicate key value violates unique constraint \"users_email_key\"")

	if !IsUniqueViolation(err, "") {
		t.Fatalf("expected message match for duplicate key text")
	}
	if IsUniqueViolation(nil, "") {
		t.Fatalf("nil error must not match")
	}
}
