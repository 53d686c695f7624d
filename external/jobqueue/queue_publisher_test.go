package jobqueue

import "testing"

func TestNormalizeDelay(t *testing.T) {
	if got := normalizeDelay(0); got != "0s" {
		t.Fatalf("expected 0s, got %s", got)
	}
	if got := normalizeDelay(90_000_000_000); got != "90s" {
		t.Fatalf("expected 90s, got %s", got)
	}
}

func TestValidateHTTPBaseURL(t *testing.T) {
	if _, err := validateHTTPBaseURL(""); err == nil {
		t.Fatal("expected error for empty url")
	}
	if _, err := validateHTTPBaseURL("ftp://queue.example.com"); err == nil {
		t.Fatal("expected error for unsupported scheme")
	}
	got, err := validateHTTPBaseURL("https://queue.example.com/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "https://queue.example.com" {
		t.Fatalf("trailing slash not trimmed: %s", got)
	}
}
