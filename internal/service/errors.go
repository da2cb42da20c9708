package service

import (
	"github.com/pkg/errors"
	"github.com/vibe-gaming/geodirectory/internal/domain"
)

// Each error wraps a domain kind so callers can branch on either.
var (
	ErrRegionNotFound         = errors.WithMessage(domain.ErrNotFound, "region")
	ErrRegionAlreadyExists    = errors.WithMessage(domain.ErrDuplicateEntry, "region already exists")
	ErrRegionHasChildren      = errors.WithMessage(domain.ErrDuplicateEntry, "region has children")
	ErrPendingRegionImmutable = errors.WithMessage(domain.ErrInvalidInput, "pending region cannot be changed")
	ErrParentRegionNotFound   = errors.WithMessage(domain.ErrInvalidInput, "parent region not found")
	ErrNotACity               = errors.WithMessage(domain.ErrInvalidInput, "region is not a city")

	ErrBusinessNotFound = errors.WithMessage(domain.ErrNotFound, "business")

	ErrUnknownBackfillTask = errors.WithMessage(domain.ErrInvalidInput, "unknown backfill task")
)

func invalidInput(msg string) error {
	return errors.WithMessage(domain.ErrInvalidInput, msg)
}
