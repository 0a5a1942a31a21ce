// Package repository stores property listings and user favorites.
package repository

import (
	"context"
	"errors"

	"inmomax/internal/model"
)

// ErrNotFound is returned when a property does not exist or was deleted.
var ErrNotFound = errors.New("property not found")

// PropertyRepository is the storage behind the property API.
type PropertyRepository interface {
	// List returns one page of available properties matching q and the total
	// number of matches.
	List(ctx context.Context, q model.PropertyQuery) ([]model.Property, int, error)
	Get(ctx context.Context, id int64) (*model.Property, error)
	IncrementViews(ctx context.Context, id int64) error
	// Create assigns p its ID.
	Create(ctx context.Context, p *model.Property) error
	Update(ctx context.Context, p *model.Property) error
	// SoftDelete marks a property inactive.
	SoftDelete(ctx context.Context, id int64) error
	// ToggleFavorite flips the favorite mark of userID on a property and
	// reports the new state.
	ToggleFavorite(ctx context.Context, userID string, id int64) (bool, error)
	Stats(ctx context.Context) (*model.PropertyStats, error)
	Ping(ctx context.Context) error
	Close() error
}
