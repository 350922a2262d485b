package domain

import (
	"net/url"
	"testing"
)

func TestScopeMerge(t *testing.T) {
	s := Scope{TenantID: 5, AccountID: 9}

	q := s.Merge(nil)
	if got := q.Get("tenant_id"); got != "5" {
		t.Fatalf("tenant_id = %q", got)
	}
	if got := q.Get("account_id"); got != "9" {
		t.Fatalf("account_id = %q", got)
	}
}

func TestScopeMergeCallerWins(t *testing.T) {
	s := Scope{TenantID: 5, AccountID: 9}

	q := url.Values{}
	q.Set("tenant_id", "7")
	q = s.Merge(q)
	if got := q.Get("tenant_id"); got != "7" {
		t.Fatalf("caller tenant_id overridden: %q", got)
	}
	if got := q.Get("account_id"); got != "9" {
		t.Fatalf("account_id = %q", got)
	}
}

func TestScopeMergeAbsentAccount(t *testing.T) {
	s := Scope{TenantID: 5}

	q := s.Merge(nil)
	if q.Has("account_id") {
		t.Fatalf("account_id should be absent")
	}
}
