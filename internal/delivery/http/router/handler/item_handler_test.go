package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockItemUsecase struct {
	mock.Mock
}

func (m *mockItemUsecase) CreateItem(ctx context.Context, input *usecase.CreateItemInput) (*usecase.ItemOutput, error) {
	args := m.Called(ctx, input)
	if output, ok := args.Get(0).(*usecase.ItemOutput); ok {
		return output, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockItemUsecase) GetItem(ctx context.Context, itemID uuid.UUID) (*usecase.ItemOutput, error) {
	args := m.Called(ctx, itemID)
	if output, ok := args.Get(0).(*usecase.ItemOutput); ok {
		return output, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockItemUsecase) UpdateItem(ctx context.Context, input *usecase.UpdateItemInput) (*usecase.ItemOutput, error) {
	args := m.Called(ctx, input)
	if output, ok := args.Get(0).(*usecase.ItemOutput); ok {
		return output, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockItemUsecase) DeleteItem(ctx context.Context, itemID, userID uuid.UUID) error {
	args := m.Called(ctx, itemID, userID)

	return args.Error(0)
}

func (m *mockItemUsecase) SearchItems(ctx context.Context, input *usecase.SearchItemsInput) (*usecase.ItemsOutput, error) {
	args := m.Called(ctx, input)
	if output, ok := args.Get(0).(*usecase.ItemsOutput); ok {
		return output, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockItemUsecase) GenerateItemQR(ctx context.Context, itemID uuid.UUID) (*usecase.ItemQROutput, error) {
	args := m.Called(ctx, itemID)
	if output, ok := args.Get(0).(*usecase.ItemQROutput); ok {
		return output, args.Error(1)
	}

	return nil, args.Error(1)
}

func newItemHandlerFixture() (*ItemHandler, *mockItemUsecase) {
	uc := &mockItemUsecase{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewItemHandler(uc, logger), uc
}

func TestNormalizeSearchDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"valid date", "17061997", "17/06/1997", true},
		{"too short", "1706199", "", false},
		{"too long", "170619977", "", false},
		{"contains letters", "17o61997", "", false},
		{"already formatted", "17/06/97", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := normalizeSearchDate(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestItemHandler_Get_InvalidUUID(t *testing.T) {
	h, uc := newItemHandlerFixture()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/items/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("itemId")
	c.SetParamValues("not-a-uuid")

	err := h.Get(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_ITEM_ID")
	uc.AssertNotCalled(t, "GetItem", mock.Anything, mock.Anything)
}

func TestItemHandler_Search_InvalidDateValue(t *testing.T) {
	h, uc := newItemHandlerFixture()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/items/search/date/170619", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("option", "value")
	c.SetParamValues("date", "170619")

	err := h.Search(c)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidDateFormat)
	uc.AssertNotCalled(t, "SearchItems", mock.Anything, mock.Anything)
}

func TestItemHandler_Search_NormalizesDate(t *testing.T) {
	h, uc := newItemHandlerFixture()

	uc.On("SearchItems", mock.Anything, &usecase.SearchItemsInput{
		Option: "date",
		Value:  "17/06/1997",
	}).Return(&usecase.ItemsOutput{}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/items/search/date/17061997", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("option", "value")
	c.SetParamValues("date", "17061997")

	err := h.Search(c)

	require.NoError(t, err)
	uc.AssertExpectations(t)
}

func TestItemHandler_Search_PassesNonDateValueThrough(t *testing.T) {
	h, uc := newItemHandlerFixture()

	uc.On("SearchItems", mock.Anything, &usecase.SearchItemsInput{
		Option: "locationCity",
		Value:  "Berlin",
	}).Return(&usecase.ItemsOutput{}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/items/search/locationCity/Berlin", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("option", "value")
	c.SetParamValues("locationCity", "Berlin")

	err := h.Search(c)

	require.NoError(t, err)
	uc.AssertExpectations(t)
}

func TestItemHandler_Search_PropagatesUsecaseError(t *testing.T) {
	h, uc := newItemHandlerFixture()

	uc.On("SearchItems", mock.Anything, mock.Anything).
		Return(nil, errors.WithStack(domainerrors.ErrNoSearchResults))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/items/search/locationCity/Atlantis", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("option", "value")
	c.SetParamValues("locationCity", "Atlantis")

	err := h.Search(c)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrNoSearchResults)
}

func TestItemHandler_Create_MissingUserID(t *testing.T) {
	h, uc := newItemHandlerFixture()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/items", nil)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Create(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	uc.AssertNotCalled(t, "CreateItem", mock.Anything, mock.Anything)
}

func TestItemHandler_QRCode_ReturnsPNG(t *testing.T) {
	h, uc := newItemHandlerFixture()
	itemID := uuid.New()

	png := []byte{0x89, 0x50, 0x4E, 0x47}
	uc.On("GenerateItemQR", mock.Anything, itemID).Return(&usecase.ItemQROutput{PNG: png}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/items/"+itemID.String()+"/qrcode", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("itemId")
	c.SetParamValues(itemID.String())

	err := h.QRCode(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, png, rec.Body.Bytes())
}

func TestHealthCheck(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := HealthCheck(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	data, ok := parsed["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ok", data["status"])
}
