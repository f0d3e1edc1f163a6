package postgres

import (
	"context"

	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// itemRepository implements the repository.ItemRepository interface using GORM.
// It is a pure data layer; ownership authorization happens in the use case.
type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository is the constructor for itemRepository.
func NewItemRepository(db *gorm.DB) repository.ItemRepository {
	return &itemRepository{db: db}
}

// FindByID retrieves a single item by its unique ID, preloading its image references.
func (repo *itemRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	var itemM model.ItemModel
	if err := repo.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("id = ?", id).
		First(&itemM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find item by id")
	}

	return toItemDomain(&itemM), nil
}

// Create persists a new item entity together with its image references.
func (repo *itemRepository) Create(ctx context.Context, item *entity.Item) error {
	itemM := fromItemDomain(item)

	if err := repo.db.WithContext(ctx).Create(itemM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrItemCreationFailed.WrapMessage("invalid owner reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrItemCreationFailed.WrapMessage("missing required item information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create item")
	}

	item.ID = itemM.ID
	item.CreatedAt = itemM.CreatedAt
	item.UpdatedAt = itemM.UpdatedAt
	for i, img := range itemM.Images {
		item.Images[i].ID = img.ID
		item.Images[i].ItemID = img.ItemID
	}

	return nil
}

// Update replaces all mutable fields of an existing item. A nil image
// sequence leaves the stored rows untouched; a non-nil sequence replaces the
// prior rows in full. Field update and image replacement commit together or
// not at all.
func (repo *itemRepository) Update(ctx context.Context, item *entity.Item) error {
	itemM := fromItemDomain(item)

	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.ItemModel{}).
			Where("id = ?", item.ID).
			Updates(map[string]any{
				"title":            itemM.Title,
				"description":      itemM.Description,
				"category":         itemM.Category,
				"location_country": itemM.LocationCountry,
				"location_city":    itemM.LocationCity,
				"asking_price":     itemM.AskingPrice,
				"delivery_type":    itemM.DeliveryType,
				"seller_name":      itemM.SellerName,
				"seller_email":     itemM.SellerEmail,
			})
		if result.Error != nil {
			if isNotNullConstraintViolation(result.Error) {
				return domainerrors.ErrItemUpdateFailed.WrapMessage("missing required item information")
			}

			return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update item")
		}
		if result.RowsAffected == 0 {
			return repository.ErrItemNotFound
		}

		if item.Images != nil {
			if err := tx.Where("item_id = ?", item.ID).Delete(&model.ItemImageModel{}).Error; err != nil {
				return domainerrors.NewDatabaseExecuteError(err, "failed to discard prior images")
			}
			if len(itemM.Images) > 0 {
				for _, img := range itemM.Images {
					img.ItemID = item.ID
				}
				if err := tx.Create(itemM.Images).Error; err != nil {
					return domainerrors.NewDatabaseExecuteError(err, "failed to attach new images")
				}
			}
		}

		return nil
	})
}

// Delete removes the item record entirely, image references included, in a
// single transaction.
func (repo *itemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", id).Delete(&model.ItemImageModel{}).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to delete item images")
		}

		result := tx.Where("id = ?", id).Delete(&model.ItemModel{})
		if result.Error != nil {
			return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete item")
		}
		if result.RowsAffected == 0 {
			return repository.ErrItemNotFound
		}

		return nil
	})
}

// FindByCountry returns all items whose location country matches exactly.
func (repo *itemRepository) FindByCountry(ctx context.Context, country string) ([]*entity.Item, error) {
	return repo.findWhere(ctx, "location_country = ?", country)
}

// FindByCity returns all items whose location city matches exactly.
func (repo *itemRepository) FindByCity(ctx context.Context, city string) ([]*entity.Item, error) {
	return repo.findWhere(ctx, "location_city = ?", city)
}

// FindByCategory returns all items whose category matches exactly.
func (repo *itemRepository) FindByCategory(ctx context.Context, category string) ([]*entity.Item, error) {
	return repo.findWhere(ctx, "category = ?", category)
}

// FindByDate returns all items listed on the given DD/MM/YYYY date.
func (repo *itemRepository) FindByDate(ctx context.Context, date string) ([]*entity.Item, error) {
	return repo.findWhere(ctx, "post_date = ?", date)
}

// findWhere runs an exact-match filter and maps the result set. Zero matches
// yield an empty slice, never an error.
func (repo *itemRepository) findWhere(ctx context.Context, query string, value string) ([]*entity.Item, error) {
	var itemModels []*model.ItemModel
	if err := repo.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where(query, value).
		Order("created_at DESC").
		Find(&itemModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to search items")
	}

	items := make([]*entity.Item, 0, len(itemModels))
	for _, itemM := range itemModels {
		items = append(items, toItemDomain(itemM))
	}

	return items, nil
}

// --- Mapper Functions ---

// toItemDomain converts a GORM ItemModel to a domain Item entity.
func toItemDomain(data *model.ItemModel) *entity.Item {
	if data == nil {
		return nil
	}

	images := make([]*entity.ItemImage, 0, len(data.Images))
	for _, img := range data.Images {
		images = append(images, &entity.ItemImage{
			ID:       img.ID,
			ItemID:   img.ItemID,
			FileName: img.FileName,
			Position: img.Position,
		})
	}

	return &entity.Item{
		ID:              data.ID,
		UserID:          data.UserID,
		Title:           data.Title,
		Description:     data.Description,
		Category:        data.Category,
		LocationCountry: data.LocationCountry,
		LocationCity:    data.LocationCity,
		AskingPrice:     data.AskingPrice,
		DeliveryType:    entity.DeliveryType(data.DeliveryType),
		SellerName:      data.SellerName,
		SellerEmail:     data.SellerEmail,
		PostDate:        data.PostDate,
		Images:          images,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

// fromItemDomain converts a domain Item entity to a GORM ItemModel for persistence.
func fromItemDomain(data *entity.Item) *model.ItemModel {
	if data == nil {
		return nil
	}

	images := make([]*model.ItemImageModel, 0, len(data.Images))
	for _, img := range data.Images {
		images = append(images, &model.ItemImageModel{
			ID:       img.ID,
			ItemID:   img.ItemID,
			FileName: img.FileName,
			Position: img.Position,
		})
	}

	return &model.ItemModel{
		ID:              data.ID,
		UserID:          data.UserID,
		Title:           data.Title,
		Description:     data.Description,
		Category:        data.Category,
		LocationCountry: data.LocationCountry,
		LocationCity:    data.LocationCity,
		AskingPrice:     data.AskingPrice,
		DeliveryType:    data.DeliveryType.String(),
		SellerName:      data.SellerName,
		SellerEmail:     data.SellerEmail,
		PostDate:        data.PostDate,
		Images:          images,
	}
}
