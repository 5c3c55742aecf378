package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnavailable marks network failures, timeouts and non-2xx provider
	// responses. The orchestrator degrades these to an absent result.
	ErrUnavailable = errors.New("provider unavailable")
	// ErrNotFound marks a well-formed provider response with no match.
	ErrNotFound = errors.New("not found")
)

// Wrap builds an error message that includes service context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, service, operation string, err error) error {
	detail := buildDetail(service, operation)
	if marker == nil {
		marker = ErrUnavailable
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsAbsence reports whether err should be treated as "this provider has
// nothing for the query" rather than a crash. Both sentinels qualify; the
// caching layer never stores either.
func IsAbsence(err error) bool {
	return errors.Is(err, ErrUnavailable) || errors.Is(err, ErrNotFound)
}

func buildDetail(service, operation string) string {
	parts := make([]string, 0, 2)
	if service = strings.TrimSpace(service); service != "" {
		parts = append(parts, service)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
