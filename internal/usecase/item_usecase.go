package usecase

import (
	"context"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateItemInput defines the data required to list a new item for sale.
type CreateItemInput struct {
	UserID          uuid.UUID
	Title           string
	Description     string
	Category        string
	LocationCountry string
	LocationCity    string
	AskingPrice     float64
	DeliveryType    string
	SellerName      string
	SellerEmail     string
	Images          []string
}

// UpdateItemInput defines the data required to edit an existing listing.
// The UserID identifies the caller, not a new owner. Images replaces the
// full image set when non-nil.
type UpdateItemInput struct {
	ItemID          uuid.UUID
	UserID          uuid.UUID
	Title           string
	Description     string
	Category        string
	LocationCountry string
	LocationCity    string
	AskingPrice     float64
	DeliveryType    string
	SellerName      string
	SellerEmail     string
	Images          []string
}

// SearchItemsInput defines a single-criterion item search.
type SearchItemsInput struct {
	Option string
	Value  string
}

// --- Output DTOs ---

// ItemOutput returns a single item listing.
type ItemOutput struct {
	Item *entity.Item
}

// ItemsOutput returns a collection of item listings.
type ItemsOutput struct {
	Items []*entity.Item
}

// ItemQROutput returns a rendered QR code image for an item listing.
type ItemQROutput struct {
	PNG []byte
}

// ItemUsecase defines the interface for item listing business operations.
type ItemUsecase interface {
	CreateItem(ctx context.Context, input *CreateItemInput) (*ItemOutput, error)
	GetItem(ctx context.Context, itemID uuid.UUID) (*ItemOutput, error)
	UpdateItem(ctx context.Context, input *UpdateItemInput) (*ItemOutput, error)
	DeleteItem(ctx context.Context, itemID, userID uuid.UUID) error
	SearchItems(ctx context.Context, input *SearchItemsInput) (*ItemsOutput, error)
	GenerateItemQR(ctx context.Context, itemID uuid.UUID) (*ItemQROutput, error)
}
