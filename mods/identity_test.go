package mods

import (
	"testing"
)

func TestIdentifierForPathMarkerInvariant(t *testing.T) {
	paths := []string{
		"/mods/Hulk_Classic_P.pak",
		"/mods/Skins/Hulk/Hulk-Classic/Hulk_Classic_P.pak",
		"C:\\Game\\Paks\\~mods\\cool-mod.pak",
	}

	for _, path := range paths {
		clean := IdentifierForPath(path)
		marked := IdentifierForPath(path + DisabledMarker)
		if clean != marked {
			t.Errorf("IdentifierForPath(%q) = %q, with marker = %q, want equal", path, clean, marked)
		}
	}
}

func TestIdentifierForPathDistinctDirectories(t *testing.T) {
	a := IdentifierForPath("/mods/Skins/Hulk/mod.pak")
	b := IdentifierForPath("/mods/Skins/Venom/mod.pak")
	if a == b {
		t.Errorf("identifiers for same file name in different directories collide: %q", a)
	}
}

func TestIdentifierForPathLength(t *testing.T) {
	id := IdentifierForPath("/mods/whatever.pak")
	if len(id) != 16 {
		t.Errorf("IdentifierForPath() length = %d, want 16", len(id))
	}
}

func TestIdentifierForPathDeterministic(t *testing.T) {
	const path = "/mods/Skins/Hulk/Hulk_Classic_P.pak"
	if IdentifierForPath(path) != IdentifierForPath(path) {
		t.Error("IdentifierForPath() is not deterministic")
	}
}

func TestIdentifierForFileNameDiffersFromPathScheme(t *testing.T) {
	legacy := IdentifierForFileName("mod.pak")
	current := IdentifierForPath("/mods/Skins/mod.pak")
	if legacy == current {
		t.Error("legacy and path-based identifiers should differ for a nested mod")
	}
}

func TestStripDisabledMarker(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"mod.pak.disabled", "mod.pak"},
		{"mod.pak", "mod.pak"},
		{"/disabled-mods/mod.pak.disabled", "/disabled-mods/mod.pak"},
	}

	for _, tt := range tests {
		if got := StripDisabledMarker(tt.in); got != tt.expected {
			t.Errorf("StripDisabledMarker(%q) = %q, want %q", tt.in, got, tt.expected)
		}
	}
}
