package ui

import "testing"

func TestGetTheme(t *testing.T) {
	if got := GetTheme("Dracula"); got.Name != "Dracula" {
		t.Fatalf("GetTheme(Dracula).Name = %q, want Dracula", got.Name)
	}
	if got := GetTheme("Slate"); got.Name != "Slate" {
		t.Fatalf("GetTheme(Slate).Name = %q, want Slate", got.Name)
	}
	if got := GetTheme("Unknown"); got.Name != "Dracula" {
		t.Fatalf("GetTheme(Unknown).Name = %q, want Dracula (fallback)", got.Name)
	}
}

func TestNextTheme(t *testing.T) {
	if got := NextTheme("Dracula"); got != "Slate" {
		t.Fatalf("NextTheme(Dracula) = %q, want Slate", got)
	}
	if got := NextTheme("Slate"); got != "Dracula" {
		t.Fatalf("NextTheme(Slate) = %q, want Dracula", got)
	}
	if got := NextTheme("Unknown"); got != "Dracula" {
		t.Fatalf("NextTheme(Unknown) = %q, want Dracula", got)
	}
}
