package logger

import "testing"

func TestRedactURL(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"https://api.test/current?lat=1&key=abc123&include=minutely", "https://api.test/current?lat=1&key=[REDACTED]&include=minutely"},
		{"https://api.test/current?key=abc123", "https://api.test/current?key=[REDACTED]"},
		{"https://api.test/current?monkey=1", "https://api.test/current?monkey=1"},
		{"no query", "no query"},
	}
	for _, tc := range cases {
		if got := RedactURL(tc.in); got != tc.want {
			t.Errorf("RedactURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeKVsRedactsSecrets(t *testing.T) {
	out := sanitizeKVs([]interface{}{"api_key", "abc", "tokens", 3, "city", "Raleigh", "dangling"})
	if out[1] != "[REDACTED]" {
		t.Errorf("api_key should be redacted, got %v", out[1])
	}
	if out[3] != 3 {
		t.Errorf("tokens count should pass through, got %v", out[3])
	}
	if out[5] != "Raleigh" {
		t.Errorf("city should pass through, got %v", out[5])
	}
	if len(out) != 7 || out[6] != "dangling" {
		t.Errorf("dangling key should be kept, got %v", out)
	}
}

func TestNopLogger(t *testing.T) {
	l := Nop().With("component", "test")
	l.Info("hello", "k", "v")
	l.Sync()
}
