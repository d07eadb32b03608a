package main

import "testing"

func TestParseSteps(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "", want: 1},
		{in: " 3 ", want: 3},
		{in: "0", wantErr: true},
		{in: "two", wantErr: true},
	}

	for _, tc := range tests {
		got, err := parseSteps(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("parseSteps(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("parseSteps(%q) = %d, %v; want %d", tc.in, got, err, tc.want)
		}
	}
}

func TestParseVersionAndTarget(t *testing.T) {
	if v, err := parseVersion("1785000000"); err != nil || v != 1785000000 {
		t.Fatalf("unexpected version: %d, %v", v, err)
	}
	if _, err := parseVersion("-1"); err == nil {
		t.Fatalf("expected error for negative version")
	}
	if _, err := parseTarget("abc"); err == nil {
		t.Fatalf("expected error for non numeric target")
	}
}

func TestResolveMigrationsDir_Explicit(t *testing.T) {
	dir := t.TempDir()
	got, err := resolveMigrationsDir(dir)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != dir {
		t.Fatalf("expected %q, got %q", dir, got)
	}
}
