package entity

import (
	"time"

	"github.com/google/uuid"
)

// MaxItemImages caps the number of image attachments per item.
const MaxItemImages = 4

// Item is a classified-ad listing. UserID is a weak reference to the creating
// User; the item itself never enforces ownership, that is the caller's job.
type Item struct {
	ID              uuid.UUID
	UserID          uuid.UUID // Owner reference, set once at creation.
	Title           string
	Description     string
	Category        string
	LocationCountry string
	LocationCity    string
	AskingPrice     float64
	DeliveryType    DeliveryType
	SellerName      string
	SellerEmail     string
	PostDate        string       // Listing date normalized to DD/MM/YYYY.
	Images          []*ItemImage // Ordered image references, at most MaxItemImages.
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ItemImage is a reference to an uploaded image file belonging to an item.
// An edit that supplies new images discards the prior sequence in full.
type ItemImage struct {
	ID       uuid.UUID
	ItemID   uuid.UUID
	FileName string
	Position int // Zero-based position in the item's image sequence.
}

// PostDateLayout is the time layout producing the DD/MM/YYYY listing date.
const PostDateLayout = "02/01/2006"

// NewPostDate returns the given instant formatted as a listing date.
func NewPostDate(t time.Time) string {
	return t.Format(PostDateLayout)
}
