package buildinfo

import "testing"

func TestShortPrefersVersionThenCommit(t *testing.T) {
	defer func(v, c string) { Version, Commit = v, c }(Version, Commit)

	Version, Commit = "dev", "unknown"
	if got := Short(); got != "dev" {
		t.Fatalf("Short = %q, want dev", got)
	}
	Commit = "1a2b3c4"
	if got := Short(); got != "1a2b3c4" {
		t.Fatalf("Short = %q, want commit", got)
	}
	Version = "v0.3.0"
	if got := Short(); got != "v0.3.0" {
		t.Fatalf("Short = %q, want version", got)
	}
	if got := Long(); got != "version=v0.3.0 commit=1a2b3c4 date="+Date {
		t.Fatalf("Long = %q", got)
	}
}
