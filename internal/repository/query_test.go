package repository

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"
)

func TestEligibleQuery_WithoutExclusions(t *testing.T) {
	from := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)

	query, args, err := eligibleQuery(EligibleFilter{From: from, Limit: 1}).ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	for _, want := range []string{
		"FROM events",
		"is_active = $1",
		"affiliate_url IS NOT NULL",
		`affiliate_url ~ '\S'`,
		"start_date >= $2",
		"ORDER BY start_date ASC, id ASC",
		"LIMIT 1",
	} {
		if !strings.Contains(query, want) {
			t.Errorf("Expected query to contain %q, got: %s", want, query)
		}
	}
	if strings.Contains(query, "NOT IN") {
		t.Errorf("Empty exclusion set must not add NOT IN: %s", query)
	}

	if len(args) != 2 {
		t.Fatalf("Expected 2 args, got %d: %v", len(args), args)
	}
	if args[1] != "2026-10-16" {
		t.Errorf("Expected start date arg 2026-10-16, got %v", args[1])
	}
}

func TestEligibleQuery_WithExclusions(t *testing.T) {
	query, args, err := eligibleQuery(EligibleFilter{
		From:    time.Now(),
		Exclude: []string{"evt-1", "evt-2"},
		Limit:   5,
	}).ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	if !strings.Contains(query, "id NOT IN ($3,$4)") {
		t.Errorf("Expected NOT IN clause, got: %s", query)
	}
	if len(args) != 4 || args[2] != "evt-1" || args[3] != "evt-2" {
		t.Errorf("Unexpected args %v", args)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	slugErr := &pq.Error{Code: "23505", Constraint: slugConstraint}
	markerErr := &pq.Error{Code: "23505", Constraint: eventMarkerConstraint}
	fkErr := &pq.Error{Code: "23503", Constraint: eventMarkerConstraint}

	if !isUniqueViolation(slugErr, slugConstraint) {
		t.Error("Expected slug violation to match")
	}
	if isUniqueViolation(slugErr, eventMarkerConstraint) {
		t.Error("Slug violation must not match marker constraint")
	}
	if !isUniqueViolation(fmt.Errorf("wrapped: %w", markerErr), eventMarkerConstraint) {
		t.Error("Expected wrapped marker violation to match")
	}
	if isUniqueViolation(fkErr, eventMarkerConstraint) {
		t.Error("Foreign key violation is not a unique violation")
	}
	if isUniqueViolation(errors.New("boom"), slugConstraint) {
		t.Error("Plain error is not a unique violation")
	}
}

func TestNonNil(t *testing.T) {
	if got := nonNil(nil); got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil slice, got %#v", got)
	}
}
