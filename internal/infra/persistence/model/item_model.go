package model

import (
	"time"

	"github.com/google/uuid"
)

// ItemModel mirrors the 'items' table. UserID references users.id but carries
// no cascade semantics toward the owner; deleting an item removes its image
// rows via the association.
type ItemModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index"`
	Title           string    `gorm:"type:varchar(255);not null"`
	Description     string    `gorm:"type:text;not null"`
	Category        string    `gorm:"type:varchar(100);not null;index"`
	LocationCountry string    `gorm:"type:varchar(100);not null;index"`
	LocationCity    string    `gorm:"type:varchar(100);not null;index"`
	AskingPrice     float64   `gorm:"not null"`
	DeliveryType    string    `gorm:"type:varchar(20);not null"`
	SellerName      string    `gorm:"type:varchar(100);not null"`
	SellerEmail     string    `gorm:"type:varchar(255);not null"`
	PostDate        string    `gorm:"type:varchar(10);not null;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Images []*ItemImageModel `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (ItemModel) TableName() string {
	return "items"
}

// ItemImageModel mirrors the 'item_images' table, one row per uploaded file
// reference, ordered by position within the item.
type ItemImageModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ItemID   uuid.UUID `gorm:"type:uuid;not null;index"`
	FileName string    `gorm:"type:varchar(255);not null"`
	Position int       `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (ItemImageModel) TableName() string {
	return "item_images"
}
