package model

import (
	"fmt"
	"strings"

	"github.com/cryptotax-micro/backend/internal/apperrors"
)

// Method selects which end of a symbol's lot queue a sale draws from.
type Method int

const (
	// FIFO consumes the earliest-acquired lot first.
	FIFO Method = iota
	// LIFO consumes the latest-acquired lot first.
	LIFO
)

func (m Method) String() string {
	switch m {
	case FIFO:
		return "FIFO"
	case LIFO:
		return "LIFO"
	default:
		return "unknown"
	}
}

// ParseMethod parses a cost basis method name, case-insensitively.
func ParseMethod(s string) (Method, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "FIFO":
		return FIFO, nil
	case "LIFO":
		return LIFO, nil
	default:
		return 0, fmt.Errorf("%w: %q", apperrors.ErrUnknownMethod, s)
	}
}
