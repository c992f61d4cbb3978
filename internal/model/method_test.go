package model

import (
	"errors"
	"testing"

	"github.com/cryptotax-micro/backend/internal/apperrors"
)

func TestParseMethod(t *testing.T) {
	cases := []struct {
		input string
		want  Method
		ok    bool
	}{
		{"FIFO", FIFO, true},
		{"fifo", FIFO, true},
		{" Lifo ", LIFO, true},
		{"LIFO", LIFO, true},
		{"", 0, false},
		{"HIFO", 0, false},
		{"average", 0, false},
	}

	for _, tc := range cases {
		t.Run("input "+tc.input, func(t *testing.T) {
			method, err := ParseMethod(tc.input)
			if tc.ok {
				if err != nil {
					t.Fatalf("ParseMethod(%q) failed: %v", tc.input, err)
				}
				if method != tc.want {
					t.Errorf("ParseMethod(%q) = %s, want %s", tc.input, method, tc.want)
				}
				return
			}
			if !errors.Is(err, apperrors.ErrUnknownMethod) {
				t.Errorf("ParseMethod(%q): expected ErrUnknownMethod, got %v", tc.input, err)
			}
		})
	}
}

func TestMethodString(t *testing.T) {
	if FIFO.String() != "FIFO" || LIFO.String() != "LIFO" {
		t.Errorf("unexpected method names: %s, %s", FIFO, LIFO)
	}
	if Method(99).String() != "unknown" {
		t.Errorf("expected unknown for out-of-range method, got %s", Method(99))
	}
}
