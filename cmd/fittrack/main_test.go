package main

import "testing"

func TestNeedsStorage(t *testing.T) {
	tests := map[string]bool{
		"init":                        false,
		"doctor":                      false,
		"keyring set <entry> <value>": false,
		"log <exercise>":              true,
		"backup create":               true,
		"tui":                         true,
	}
	for command, want := range tests {
		if got := needsStorage(command); got != want {
			t.Errorf("needsStorage(%q) = %v, want %v", command, got, want)
		}
	}
}
