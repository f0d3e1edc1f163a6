package qrcode

import (
	"encoding/json"
	"fmt"
	"strings"

	"bazaar/internal/domain/service"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// QRCodeData represents the QR code data structure
type QRCodeData struct {
	ItemID string `json:"item_id"`
	Type   string `json:"type"`
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel, baseURL string) service.QRCodeService {
	// Set error correction level
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
		baseURL:              strings.TrimSuffix(baseURL, "/"),
	}
}

// GenerateItemQR generates a QR code for an item listing.
// When a base URL is configured the code encodes a shareable listing link,
// otherwise it encodes a JSON payload with the item ID.
func (s *qrcodeService) GenerateItemQR(itemID uuid.UUID) ([]byte, error) {
	var content string
	if s.baseURL != "" {
		content = fmt.Sprintf("%s/items/%s", s.baseURL, itemID.String())
	} else {
		data := QRCodeData{
			ItemID: itemID.String(),
			Type:   "listing",
		}

		jsonData, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal QR code data: %w", err)
		}
		content = string(jsonData)
	}

	// Generate QR code
	qrCode, err := qrcode.New(content, s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	// Generate PNG image
	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}

// ParseItemQR parses QR code JSON data and returns the item ID
func (s *qrcodeService) ParseItemQR(qrData string) (uuid.UUID, error) {
	var data QRCodeData
	if err := json.Unmarshal([]byte(qrData), &data); err != nil {
		return uuid.Nil, fmt.Errorf("failed to unmarshal QR code data: %w", err)
	}

	// Validate type
	if data.Type != "listing" {
		return uuid.Nil, fmt.Errorf("invalid QR code type: %s", data.Type)
	}

	// Parse UUID
	itemID, err := uuid.Parse(data.ItemID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse item ID: %w", err)
	}

	return itemID, nil
}
