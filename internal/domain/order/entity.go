// internal/domain/order/entity.go
package order

import (
	"errors"
	"strings"
	"time"

	"github.com/Conrad-Tinio/CS121-Online-Store/internal/domain/cart"
	"github.com/Conrad-Tinio/CS121-Online-Store/internal/domain/catalog"
)

var ErrNoDeliveryLocation = errors.New("order: delivery location is required")

// PaymentMethodCashOnDelivery is the only payment method the storefront
// submits; payment processing itself happens server side.
const PaymentMethodCashOnDelivery = "Cash on Delivery"

// DeliveryLocation is the map-picked delivery target. The picker itself is
// an external collaborator; only the resulting coordinates and address
// travel through here.
type DeliveryLocation struct {
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	AddressDetails string  `json:"address_details"`
}

func (l DeliveryLocation) Validate() error {
	if l.Latitude == 0 && l.Longitude == 0 && strings.TrimSpace(l.AddressDetails) == "" {
		return ErrNoDeliveryLocation
	}
	return nil
}

// SnapshotItem is one line of an order snapshot.
type SnapshotItem struct {
	ProductID int64
	Name      string
	UnitPrice float64
	Quantity  int
	ImageRef  string
}

func (i SnapshotItem) LineTotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

// Snapshot is an immutable copy of cart lines, delivery location and
// computed total, captured at submission time. The success view renders
// from it after the live cart has been emptied.
type Snapshot struct {
	Items      []SnapshotItem
	Location   DeliveryLocation
	Total      float64
	CapturedAt time.Time
}

// NewSnapshot copies the given cart lines; later cart mutations never leak
// into the snapshot.
func NewSnapshot(lines []cart.Line, loc DeliveryLocation, now time.Time) Snapshot {
	items := make([]SnapshotItem, 0, len(lines))
	var total float64
	for _, l := range lines {
		items = append(items, SnapshotItem{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			ImageRef:  l.ImageRef,
		})
		total += l.LineTotal()
	}
	return Snapshot{
		Items:      items,
		Location:   loc,
		Total:      total,
		CapturedAt: now,
	}
}

// CreateItem is one order line in the order-create request body.
type CreateItem struct {
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// CreateRequest is the POST /api/orders/create/ body.
type CreateRequest struct {
	OrderItems       []CreateItem     `json:"order_items"`
	DeliveryLocation DeliveryLocation `json:"delivery_location"`
	PaymentMethod    string           `json:"payment_method"`
	ShippingPrice    float64          `json:"shipping_price"`
	TotalPrice       float64          `json:"total_price"`
}

// CreateRequestFromSnapshot builds the wire request for a captured
// snapshot. Shipping is currently always zero.
func CreateRequestFromSnapshot(s Snapshot) CreateRequest {
	items := make([]CreateItem, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, CreateItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.UnitPrice,
		})
	}
	return CreateRequest{
		OrderItems:       items,
		DeliveryLocation: s.Location,
		PaymentMethod:    PaymentMethodCashOnDelivery,
		ShippingPrice:    0,
		TotalPrice:       s.Total,
	}
}

// Created is the order-create response.
type Created struct {
	ID int64 `json:"id"`
}

// Item is one line of a fetched order.
type Item struct {
	ID       int64           `json:"id"`
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
	Price    catalog.Decimal `json:"price"`
}

// Order is the order detail payload.
type Order struct {
	ID               int64            `json:"id"`
	Status           string           `json:"status"`
	IsPaid           bool             `json:"is_paid"`
	IsDelivered      bool             `json:"is_delivered"`
	DeliveryLocation DeliveryLocation `json:"delivery_location"`
	TotalPrice       catalog.Decimal  `json:"total_price"`
	CreatedAt        string           `json:"created_at"`
	Items            []Item           `json:"items"`
}

// Summary is one element of the my-orders listing.
type Summary struct {
	ID          int64           `json:"id"`
	Status      string          `json:"status"`
	IsPaid      bool            `json:"is_paid"`
	IsDelivered bool            `json:"is_delivered"`
	TotalPrice  catalog.Decimal `json:"total_price"`
	CreatedAt   string          `json:"created_at"`
}
