package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	deliverycontext "bazaar/internal/delivery/context"
	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/domain/service"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// itemService implements the ItemUsecase interface. Ownership of a listing is
// enforced here, not in the repository, so every mutation path goes through
// the same check.
type itemService struct {
	itemRepo  repository.ItemRepository
	publisher service.EventPublisher
	qrService service.QRCodeService
	logger    *slog.Logger
}

// NewItemService is the constructor for itemService.
func NewItemService(
	itemRepo repository.ItemRepository,
	publisher service.EventPublisher,
	qrService service.QRCodeService,
	logger *slog.Logger,
) usecase.ItemUsecase {
	return &itemService{
		itemRepo:  itemRepo,
		publisher: publisher,
		qrService: qrService,
		logger:    logger,
	}
}

// CreateItem creates a new listing owned by the calling user. The post date
// is stamped server-side at creation and never changes afterwards.
func (srv *itemService) CreateItem(ctx context.Context, input *usecase.CreateItemInput) (*usecase.ItemOutput, error) {
	srv.logger.Info("Creating item", "userID", input.UserID, "title", input.Title)

	if err := validateItemInput(input.DeliveryType, input.Images); err != nil {
		return nil, err
	}

	newItem := &entity.Item{
		UserID:          input.UserID,
		Title:           input.Title,
		Description:     input.Description,
		Category:        input.Category,
		LocationCountry: input.LocationCountry,
		LocationCity:    input.LocationCity,
		AskingPrice:     input.AskingPrice,
		DeliveryType:    entity.DeliveryType(input.DeliveryType),
		SellerName:      input.SellerName,
		SellerEmail:     input.SellerEmail,
		PostDate:        entity.NewPostDate(time.Now()),
		Images:          buildImages(input.Images),
	}

	if err := srv.itemRepo.Create(ctx, newItem); err != nil {
		srv.logger.Error("Failed to create item", "error", err, "userID", input.UserID)

		return nil, errors.Wrap(err, "failed to create item")
	}
	srv.logger.Debug("Item created successfully", "itemID", newItem.ID)

	srv.publishItemEvent(ctx, service.ItemEventCreated, newItem)

	return &usecase.ItemOutput{Item: newItem}, nil
}

// GetItem retrieves a single listing by its ID.
func (srv *itemService) GetItem(ctx context.Context, itemID uuid.UUID) (*usecase.ItemOutput, error) {
	item, err := srv.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, domainerrors.ErrItemNotFound.WrapMessage("item lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find item by id")
	}

	return &usecase.ItemOutput{Item: item}, nil
}

// UpdateItem edits an existing listing. Only the owner may edit; the post
// date and the owner reference are immutable.
func (srv *itemService) UpdateItem(ctx context.Context, input *usecase.UpdateItemInput) (*usecase.ItemOutput, error) {
	srv.logger.Info("Updating item", "itemID", input.ItemID, "userID", input.UserID)

	if err := validateItemInput(input.DeliveryType, input.Images); err != nil {
		return nil, err
	}

	existing, err := srv.itemRepo.FindByID(ctx, input.ItemID)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, domainerrors.ErrItemNotFound.WrapMessage("item update failed")
		}

		return nil, errors.Wrap(err, "failed to find item by id")
	}

	if existing.UserID != input.UserID {
		srv.logger.Warn("Item update rejected: caller is not the owner",
			"itemID", input.ItemID, "ownerID", existing.UserID, "callerID", input.UserID)

		return nil, domainerrors.ErrItemOwnership.WrapMessage("item update failed")
	}

	existing.Title = input.Title
	existing.Description = input.Description
	existing.Category = input.Category
	existing.LocationCountry = input.LocationCountry
	existing.LocationCity = input.LocationCity
	existing.AskingPrice = input.AskingPrice
	existing.DeliveryType = entity.DeliveryType(input.DeliveryType)
	existing.SellerName = input.SellerName
	existing.SellerEmail = input.SellerEmail
	if input.Images != nil {
		existing.Images = buildImages(input.Images)
	} else {
		// A nil sequence tells the repository to leave the stored images alone.
		existing.Images = nil
	}

	if err := srv.itemRepo.Update(ctx, existing); err != nil {
		srv.logger.Error("Failed to update item", "error", err, "itemID", input.ItemID)

		return nil, errors.Wrap(err, "failed to update item")
	}

	updated, err := srv.itemRepo.FindByID(ctx, input.ItemID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload item after update")
	}
	srv.logger.Debug("Item updated successfully", "itemID", updated.ID)

	srv.publishItemEvent(ctx, service.ItemEventEdited, updated)

	return &usecase.ItemOutput{Item: updated}, nil
}

// DeleteItem removes a listing and its image references. Only the owner may delete.
func (srv *itemService) DeleteItem(ctx context.Context, itemID, userID uuid.UUID) error {
	srv.logger.Info("Deleting item", "itemID", itemID, "userID", userID)

	existing, err := srv.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return domainerrors.ErrItemNotFound.WrapMessage("item deletion failed")
		}

		return errors.Wrap(err, "failed to find item by id")
	}

	if existing.UserID != userID {
		srv.logger.Warn("Item deletion rejected: caller is not the owner",
			"itemID", itemID, "ownerID", existing.UserID, "callerID", userID)

		return domainerrors.ErrItemOwnership.WrapMessage("item deletion failed")
	}

	if err := srv.itemRepo.Delete(ctx, itemID); err != nil {
		srv.logger.Error("Failed to delete item", "error", err, "itemID", itemID)

		return errors.Wrap(err, "failed to delete item")
	}
	srv.logger.Debug("Item deleted successfully", "itemID", itemID)

	srv.publishItemEvent(ctx, service.ItemEventDeleted, existing)

	return nil
}

// SearchItems performs a single-criterion exact-match search. A valid search
// that matches nothing is reported as no-results, which is distinct from an
// invalid search option.
func (srv *itemService) SearchItems(ctx context.Context, input *usecase.SearchItemsInput) (*usecase.ItemsOutput, error) {
	option := entity.SearchOption(input.Option)
	if !option.IsValid() {
		return nil, domainerrors.ErrInvalidSearchOption.WrapMessage("item search failed")
	}

	var items []*entity.Item
	var err error

	switch option {
	case entity.SearchByCategory:
		items, err = srv.itemRepo.FindByCategory(ctx, input.Value)
	case entity.SearchByDate:
		items, err = srv.itemRepo.FindByDate(ctx, input.Value)
	case entity.SearchByCountry:
		items, err = srv.itemRepo.FindByCountry(ctx, input.Value)
	case entity.SearchByCity:
		items, err = srv.itemRepo.FindByCity(ctx, input.Value)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to search items")
	}

	if len(items) == 0 {
		return nil, domainerrors.ErrNoSearchResults.WrapMessage("item search matched nothing")
	}

	return &usecase.ItemsOutput{Items: items}, nil
}

// GenerateItemQR renders a shareable QR code for an existing listing.
func (srv *itemService) GenerateItemQR(ctx context.Context, itemID uuid.UUID) (*usecase.ItemQROutput, error) {
	if _, err := srv.itemRepo.FindByID(ctx, itemID); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, domainerrors.ErrItemNotFound.WrapMessage("item QR generation failed")
		}

		return nil, errors.Wrap(err, "failed to find item by id")
	}

	png, err := srv.qrService.GenerateItemQR(itemID)
	if err != nil {
		srv.logger.Error("Failed to generate item QR code", "error", err, "itemID", itemID)

		return nil, errors.Wrap(err, "failed to generate item QR code")
	}

	return &usecase.ItemQROutput{PNG: png}, nil
}

// publishItemEvent emits a lifecycle event for async consumers. Publishing is
// best effort; a failed publish never fails the originating request.
func (srv *itemService) publishItemEvent(ctx context.Context, eventType string, item *entity.Item) {
	event := &service.ItemEvent{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		EventType: eventType,
		ItemID:    item.ID.String(),
		UserID:    item.UserID.String(),
		Category:  item.Category,
		Country:   item.LocationCountry,
		City:      item.LocationCity,
	}

	if err := srv.publisher.PublishItemEvent(ctx, event); err != nil {
		srv.logger.Warn("Failed to publish item event",
			"event_type", eventType, "itemID", item.ID, "error", err)
	}
}

// validateItemInput guards invariants the transport-level validator cannot
// express once requests are already bound.
func validateItemInput(deliveryType string, images []string) error {
	if !entity.DeliveryType(deliveryType).IsValid() {
		return domainerrors.ErrValidationFailed.WithDetails(
			fmt.Sprintf("deliveryType must be %q or %q", entity.DeliveryTypePickup, entity.DeliveryTypeDelivery))
	}
	if len(images) > entity.MaxItemImages {
		return domainerrors.ErrValidationFailed.WithDetails(
			fmt.Sprintf("at most %d images are allowed per item", entity.MaxItemImages))
	}

	return nil
}

// buildImages converts bound file names into ordered image references.
func buildImages(fileNames []string) []*entity.ItemImage {
	if fileNames == nil {
		return nil
	}

	images := make([]*entity.ItemImage, 0, len(fileNames))
	for i, name := range fileNames {
		images = append(images, &entity.ItemImage{
			FileName: name,
			Position: i,
		})
	}

	return images
}
