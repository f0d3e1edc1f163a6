package repository

import (
	"context"
	"errors"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrItemNotFound is a domain-specific error returned when an item is not found.
var ErrItemNotFound = errors.New("item not found")

// ItemRepository defines the standard operations for item persistence.
// It is a pure data layer: ownership authorization is deliberately NOT
// enforced here but by the caller, which compares the item's owner against
// the authenticated identity before invoking Update or Delete.
type ItemRepository interface {
	// FindByID retrieves a single item, including its image references.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Item, error)

	// Create persists a new item entity together with its image references.
	Create(ctx context.Context, item *entity.Item) error

	// Update replaces all mutable fields of an existing item. When the item
	// carries a new image sequence the prior sequence is discarded in full
	// before the new one is attached; there is no incremental image update.
	Update(ctx context.Context, item *entity.Item) error

	// Delete removes the item record entirely, including its image references.
	Delete(ctx context.Context, id uuid.UUID) error

	// The search family returns a possibly-empty slice and never errors on
	// zero matches; "no results" is signaled by the caller.

	// FindByCountry returns all items whose location country matches exactly.
	FindByCountry(ctx context.Context, country string) ([]*entity.Item, error)

	// FindByCity returns all items whose location city matches exactly.
	FindByCity(ctx context.Context, city string) ([]*entity.Item, error)

	// FindByCategory returns all items whose category matches exactly.
	FindByCategory(ctx context.Context, category string) ([]*entity.Item, error)

	// FindByDate returns all items whose listing date matches the given
	// DD/MM/YYYY value exactly. Normalizing the raw DDMMYYYY input is the
	// caller's responsibility.
	FindByDate(ctx context.Context, date string) ([]*entity.Item, error)
}
