package scrapers

import (
  "strings"
  "testing"
  "unicode/utf8"
)

func TestClip(t *testing.T) {
  cases := []struct {
    name string
    in   string
    n    int
    want string
  }{
    {"short passes through", "hello", 100, "hello"},
    {"exact length untouched", "abcd", 4, "abcd"},
    {"ascii cut flush", "abcdef", 3, "abc"},
  }
  for _, tc := range cases {
    if got := clip(tc.in, tc.n); got != tc.want {
      t.Errorf("%s: clip(%q, %d) = %q, want %q", tc.name, tc.in, tc.n, got, tc.want)
    }
  }
}

func TestClipKeepsRunesWhole(t *testing.T) {
  in := strings.Repeat("日", 40) // 3 bytes per rune
  got := clip(in, 100)
  if !utf8.ValidString(got) {
    t.Fatalf("clip produced invalid UTF-8: %q", got)
  }
  if len(got) > 100 {
    t.Errorf("expected at most 100 bytes, got %d", len(got))
  }
  if got != strings.Repeat("日", 33) {
    t.Errorf("expected cut on the rune boundary, got %d bytes", len(got))
  }
}
