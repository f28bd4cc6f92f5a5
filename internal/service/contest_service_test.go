package service

import (
	"errors"
	"strings"
	"testing"
)

func TestGenerateJoinCodeFormat(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := generateJoinCode()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(code) != joinCodeLength {
			t.Fatalf("code %q has length %d, want %d", code, len(code), joinCodeLength)
		}
		for _, ch := range code {
			if !strings.ContainsRune(joinCodeCharset, ch) {
				t.Fatalf("code %q contains %q, not in charset", code, ch)
			}
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Fatalf("expected some variety across 100 codes, got %d unique", len(seen))
	}
}

func TestClampRatio(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.25, 0.25},
		{1, 1},
		{1.5, 1},
	}
	for _, tc := range cases {
		if got := clampRatio(tc.in); got != tc.want {
			t.Fatalf("clampRatio(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestIsDuplicateKey(t *testing.T) {
	if isDuplicateKey(nil) {
		t.Fatalf("nil error is not a duplicate")
	}
	if isDuplicateKey(errors.New("connection refused")) {
		t.Fatalf("unrelated error is not a duplicate")
	}
	if !isDuplicateKey(errors.New("Error 1062: Duplicate entry 'AB12CD' for key 'join_code'")) {
		t.Fatalf("mysql duplicate entry error should be recognized")
	}
}
