// Package entity contains the core business objects of the project.
package entity

// DeliveryType represents how a sold item is handed over to the buyer.
type DeliveryType string

const (
	// DeliveryTypePickup indicates the buyer collects the item in person.
	DeliveryTypePickup DeliveryType = "pickup"
	// DeliveryTypeDelivery indicates the seller ships the item.
	DeliveryTypeDelivery DeliveryType = "delivery"
)

// String returns the string representation of the DeliveryType.
func (d DeliveryType) String() string {
	return string(d)
}

// IsValid checks if the DeliveryType is a valid value.
func (d DeliveryType) IsValid() bool {
	switch d {
	case DeliveryTypePickup, DeliveryTypeDelivery:
		return true
	default:
		return false
	}
}
