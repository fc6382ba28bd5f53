package models

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Order is the request body of the createOrder function
type Order struct {
	Customer string     `json:"customer" validate:"required,min=1,max=255"`
	Email    string     `json:"email,omitempty" validate:"omitempty,email"`
	Items    []LineItem `json:"items" validate:"required,min=1,dive"`
}

// LineItem represents a line item in an order
type LineItem struct {
	SKU       string  `json:"sku" validate:"required,min=1,max=64"`
	Quantity  int     `json:"quantity" validate:"required,min=1"`
	UnitPrice float64 `json:"unit_price" validate:"gte=0"`
}

// LineTotal returns the rounded total of the line item
func (li LineItem) LineTotal() float64 {
	return roundToTwoDecimals(li.UnitPrice * float64(li.Quantity))
}

// OrderReceipt is the response body of the createOrder function
type OrderReceipt struct {
	OrderID    string    `json:"order_id"`
	Customer   string    `json:"customer"`
	ItemCount  int       `json:"item_count"`
	Total      float64   `json:"total"`
	ReceivedAt time.Time `json:"received_at"`
}

// NewOrderReceipt creates a receipt for order with a generated ID
func NewOrderReceipt(order Order) *OrderReceipt {
	receipt := &OrderReceipt{
		OrderID:    uuid.New().String(),
		Customer:   order.Customer,
		ReceivedAt: time.Now().UTC(),
	}

	for _, item := range order.Items {
		receipt.ItemCount += item.Quantity
		receipt.Total += item.LineTotal()
	}
	receipt.Total = roundToTwoDecimals(receipt.Total)

	return receipt
}

func roundToTwoDecimals(v float64) float64 {
	return math.Round(v*100) / 100
}
