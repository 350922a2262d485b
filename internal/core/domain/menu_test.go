package domain

import (
	"errors"
	"testing"
)

func TestFlattenGroupsAndLeaves(t *testing.T) {
	table, err := NewMenuTable(
		MenuNode{Path: "/trading", Title: "Trading", Children: []MenuNode{
			{Path: "/trading/orders", Title: "Orders"},
			{Path: "/trading/fills", Title: "Fills"},
			{Path: "/trading/positions", Title: "Positions"},
		}},
		MenuNode{Path: "/dashboard", Title: "Dashboard"},
	)
	if err != nil {
		t.Fatalf("table: %v", err)
	}

	entries := table.Flatten()
	if len(entries) != 4 {
		t.Fatalf("expected 4 routes, got %d", len(entries))
	}
	want := []string{"/trading/orders", "/trading/fills", "/trading/positions", "/dashboard"}
	for i, p := range want {
		if entries[i].Path != p {
			t.Fatalf("entry %d: expected %s, got %s", i, p, entries[i].Path)
		}
	}
}

func TestDuplicateLeafPathRejected(t *testing.T) {
	_, err := NewMenuTable(
		MenuNode{Path: "/dashboard", Title: "Dashboard"},
		MenuNode{Path: "/group", Children: []MenuNode{
			{Path: "/dashboard", Title: "Dup"},
		}},
	)
	if !errors.Is(err, ErrDuplicateMenuPath) {
		t.Fatalf("expected ErrDuplicateMenuPath, got %v", err)
	}
}

func TestResolveHomePriority(t *testing.T) {
	cases := []struct {
		configured, suggested, want string
	}{
		{"/custom", "/suggested", "/custom"},
		{"", "/suggested", "/suggested"},
		{"", "", DefaultHomePath},
	}
	for _, tc := range cases {
		if got := ResolveHome(tc.configured, tc.suggested); got != tc.want {
			t.Fatalf("ResolveHome(%q, %q) = %q, want %q", tc.configured, tc.suggested, got, tc.want)
		}
	}
}

func TestBuildRouteTable(t *testing.T) {
	table, err := NewMenuTable(
		MenuNode{Path: "/g", Children: []MenuNode{
			{Path: "/g/a", Title: "A"},
			{Path: "/g/b", Title: "B"},
			{Path: "/g/c", Title: "C"},
		}},
		MenuNode{Path: "/solo", Title: "Solo"},
	)
	if err != nil {
		t.Fatalf("table: %v", err)
	}

	rt := BuildRouteTable(table, "", "")
	if rt.Len() != 4 {
		t.Fatalf("expected 4 routes, got %d", rt.Len())
	}
	if rt.Home != DefaultHomePath {
		t.Fatalf("expected home %s, got %s", DefaultHomePath, rt.Home)
	}
	if _, ok := rt.Lookup("/g/b"); !ok {
		t.Fatalf("lookup /g/b failed")
	}
	if _, ok := rt.Lookup("/missing"); ok {
		t.Fatalf("lookup /missing should fail")
	}
}

func TestConsoleMenuIsValid(t *testing.T) {
	// The static menu must flatten with unique paths and include the
	// default home leaf.
	rt := BuildRouteTable(ConsoleMenu, "", "")
	if rt.Len() == 0 {
		t.Fatalf("console menu produced no routes")
	}
	if _, ok := rt.Lookup(DefaultHomePath); !ok {
		t.Fatalf("console menu is missing %s", DefaultHomePath)
	}
}
