package handler

import (
	"log/slog"
	"net/http"
	"time"

	deliverycontext "bazaar/internal/delivery/context"
	"bazaar/internal/delivery/http/response"
	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// searchDateLength is the expected length of a DDMMYYYY search value.
const searchDateLength = 8

// ItemHandler holds dependencies for item listing handlers.
type ItemHandler struct {
	uc     usecase.ItemUsecase
	logger *slog.Logger
}

// NewItemHandler is the constructor for ItemHandler, injected by Fx.
func NewItemHandler(uc usecase.ItemUsecase, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{
		uc:     uc,
		logger: logger,
	}
}

// itemRequest is the payload for creating and editing a listing.
type itemRequest struct {
	Title           string   `json:"title" validate:"required,max=200"`
	Description     string   `json:"description" validate:"max=2000"`
	Category        string   `json:"category" validate:"required,max=100"`
	LocationCountry string   `json:"location_country" validate:"required,max=100"`
	LocationCity    string   `json:"location_city" validate:"required,max=100"`
	AskingPrice     float64  `json:"asking_price" validate:"required,gt=0"`
	DeliveryType    string   `json:"delivery_type" validate:"required,oneof=pickup delivery"`
	SellerName      string   `json:"seller_name" validate:"required,max=100"`
	SellerEmail     string   `json:"seller_email" validate:"required,email"`
	Images          []string `json:"images" validate:"omitempty,max=4,dive,required"`
}

// itemImageResponse is the public view of an image reference.
type itemImageResponse struct {
	FileName string `json:"file_name"`
	Position int    `json:"position"`
}

// itemResponse is the public view of a listing.
type itemResponse struct {
	ID              string               `json:"id"`
	UserID          string               `json:"user_id"`
	Title           string               `json:"title"`
	Description     string               `json:"description"`
	Category        string               `json:"category"`
	LocationCountry string               `json:"location_country"`
	LocationCity    string               `json:"location_city"`
	AskingPrice     float64              `json:"asking_price"`
	DeliveryType    string               `json:"delivery_type"`
	SellerName      string               `json:"seller_name"`
	SellerEmail     string               `json:"seller_email"`
	PostDate        string               `json:"post_date"`
	Images          []*itemImageResponse `json:"images"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

func toItemResponse(item *entity.Item) *itemResponse {
	images := make([]*itemImageResponse, 0, len(item.Images))
	for _, img := range item.Images {
		images = append(images, &itemImageResponse{
			FileName: img.FileName,
			Position: img.Position,
		})
	}

	return &itemResponse{
		ID:              item.ID.String(),
		UserID:          item.UserID.String(),
		Title:           item.Title,
		Description:     item.Description,
		Category:        item.Category,
		LocationCountry: item.LocationCountry,
		LocationCity:    item.LocationCity,
		AskingPrice:     item.AskingPrice,
		DeliveryType:    item.DeliveryType.String(),
		SellerName:      item.SellerName,
		SellerEmail:     item.SellerEmail,
		PostDate:        item.PostDate,
		Images:          images,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
}

func toItemListResponse(items []*entity.Item) []*itemResponse {
	out := make([]*itemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toItemResponse(item))
	}

	return out
}

// Create handles listing a new item. The owner is always the authenticated caller.
func (h *ItemHandler) Create(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Invalid user ID in token")
	}

	var req itemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid item input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.CreateItem(c.Request().Context(), &usecase.CreateItemInput{
		UserID:          userID,
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		LocationCountry: req.LocationCountry,
		LocationCity:    req.LocationCity,
		AskingPrice:     req.AskingPrice,
		DeliveryType:    req.DeliveryType,
		SellerName:      req.SellerName,
		SellerEmail:     req.SellerEmail,
		Images:          req.Images,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toItemResponse(output.Item))
}

// Get handles fetching a single listing by ID. No authentication required.
func (h *ItemHandler) Get(c echo.Context) error {
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ITEM_ID", "Item ID must be a valid UUID")
	}

	output, err := h.uc.GetItem(c.Request().Context(), itemID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toItemResponse(output.Item))
}

// Update handles editing an existing listing. Only the owner may edit.
func (h *ItemHandler) Update(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Invalid user ID in token")
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ITEM_ID", "Item ID must be a valid UUID")
	}

	var req itemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid item input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.UpdateItem(c.Request().Context(), &usecase.UpdateItemInput{
		ItemID:          itemID,
		UserID:          userID,
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		LocationCountry: req.LocationCountry,
		LocationCity:    req.LocationCity,
		AskingPrice:     req.AskingPrice,
		DeliveryType:    req.DeliveryType,
		SellerName:      req.SellerName,
		SellerEmail:     req.SellerEmail,
		Images:          req.Images,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toItemResponse(output.Item))
}

// Delete handles removing a listing. Only the owner may delete.
func (h *ItemHandler) Delete(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Invalid user ID in token")
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ITEM_ID", "Item ID must be a valid UUID")
	}

	if err := h.uc.DeleteItem(c.Request().Context(), itemID, userID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Item deleted successfully"})
}

// Search handles single-criterion item search. No authentication required.
// Date values arrive as DDMMYYYY in the URL and are normalized to the stored
// DD/MM/YYYY form before querying.
func (h *ItemHandler) Search(c echo.Context) error {
	option := c.Param("option")
	value := c.Param("value")

	if entity.SearchOption(option) == entity.SearchByDate {
		normalized, ok := normalizeSearchDate(value)
		if !ok {
			return errors.WithStack(domainerrors.ErrInvalidDateFormat)
		}
		value = normalized
	}

	output, err := h.uc.SearchItems(c.Request().Context(), &usecase.SearchItemsInput{
		Option: option,
		Value:  value,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toItemListResponse(output.Items))
}

// QRCode handles rendering a shareable QR code PNG for a listing.
func (h *ItemHandler) QRCode(c echo.Context) error {
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ITEM_ID", "Item ID must be a valid UUID")
	}

	output, err := h.uc.GenerateItemQR(c.Request().Context(), itemID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", output.PNG)
}

// normalizeSearchDate turns a DDMMYYYY value into the stored DD/MM/YYYY form.
// Anything other than exactly eight digits is rejected.
func normalizeSearchDate(value string) (string, bool) {
	if len(value) != searchDateLength {
		return "", false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return "", false
		}
	}

	return value[0:2] + "/" + value[2:4] + "/" + value[4:8], true
}
