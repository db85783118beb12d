package repository

import (
	"context"

	"github.com/Ziaullahkhan-Ai/analytics-dashboard-pro/pkg/model"
)

// Repository defines the interface for identity persistence. At most one
// profile record exists at a time; its presence gates dashboard operations.
type Repository interface {
	// PutProfile stores the identity record, replacing any existing one
	PutProfile(ctx context.Context, profile *model.Profile) error

	// GetProfile retrieves the stored identity record, or nil when absent
	GetProfile(ctx context.Context) (*model.Profile, error)

	// DeleteProfile removes the identity record; removing an absent record is a no-op
	DeleteProfile(ctx context.Context) error

	// Close releases the underlying store
	Close() error
}
