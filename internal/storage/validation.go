// Package storage provides the local snapshot cache for purchase records.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/supply-flow/internal/model"
	"github.com/Veraticus/supply-flow/internal/service"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrEmptySlice       = errors.New("slice cannot be empty")
	ErrInvalidDateRange = errors.New("start date must be before end date")
	ErrInvalidRecord    = errors.New("invalid purchase record")
	ErrInvalidLimit     = errors.New("limit cannot be negative")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateRecords validates a slice of records before it is stored.
func validateRecords(records []model.PurchaseRecord) error {
	if len(records) == 0 {
		return fmt.Errorf("%w: records", ErrEmptySlice)
	}

	for i, r := range records {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("%w at index %d: %w", ErrInvalidRecord, i, err)
		}
	}
	return nil
}

func validateQuery(query service.RecordQuery) error {
	if query.Start != nil && query.End != nil && query.End.Before(*query.Start) {
		return fmt.Errorf("%w: end date %v is before start date %v", ErrInvalidDateRange, *query.End, *query.Start)
	}
	return nil
}

func validateLimit(n int, paramName string) error {
	if n < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidLimit, paramName)
	}
	return nil
}
