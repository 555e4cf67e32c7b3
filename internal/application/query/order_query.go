// internal/application/query/order_query.go
package query

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Conrad-Tinio/CS121-Online-Store/internal/domain/order"
)

var ErrOrderInvalidArgument = errors.New("order query: invalid argument")

// OrderReader is the outbound port for order lookups.
type OrderReader interface {
	// FetchOrder returns the order with the given id owned by the
	// authenticated customer.
	FetchOrder(ctx context.Context, id int64) (order.Order, error)
	// FetchMyOrders returns the authenticated customer's order history,
	// newest first as served by the backend.
	FetchMyOrders(ctx context.Context) ([]order.Summary, error)
}

// OrderQuery serves the order detail and order history screens.
type OrderQuery struct {
	reader OrderReader
}

func NewOrderQuery(reader OrderReader) *OrderQuery {
	return &OrderQuery{reader: reader}
}

func (q *OrderQuery) Order(ctx context.Context, id int64) (order.Order, error) {
	if id <= 0 {
		return order.Order{}, fmt.Errorf("%w: order id must be positive", ErrOrderInvalidArgument)
	}
	o, err := q.reader.FetchOrder(ctx, id)
	if err != nil {
		log.Printf("[order_query] fetch order %d: %v", id, err)
		return order.Order{}, err
	}
	return o, nil
}

func (q *OrderQuery) MyOrders(ctx context.Context) ([]order.Summary, error) {
	summaries, err := q.reader.FetchMyOrders(ctx)
	if err != nil {
		log.Printf("[order_query] fetch my orders: %v", err)
		return nil, err
	}
	return summaries, nil
}
