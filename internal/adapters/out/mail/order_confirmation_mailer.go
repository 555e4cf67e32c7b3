// internal/adapters/out/mail/order_confirmation_mailer.go
package mail

import (
	"context"
	"fmt"
	"strings"

	"github.com/Conrad-Tinio/CS121-Online-Store/internal/application/usecase"
	"github.com/Conrad-Tinio/CS121-Online-Store/internal/domain/order"
)

// OrderConfirmationMailer sends a plain-text receipt after a successful
// checkout. It renders from the captured snapshot, not the live cart,
// which is already empty by the time this runs.
type OrderConfirmationMailer struct {
	client      EmailClient
	fromAddress string
	toAddress   string
}

func NewOrderConfirmationMailer(client EmailClient, fromAddress, toAddress string) *OrderConfirmationMailer {
	return &OrderConfirmationMailer{
		client:      client,
		fromAddress: fromAddress,
		toAddress:   toAddress,
	}
}

// SendOrderConfirmation implements the checkout orchestrator's mailer port.
func (m *OrderConfirmationMailer) SendOrderConfirmation(ctx context.Context, snap order.Snapshot, created order.Created) error {
	if m == nil || m.client == nil {
		return fmt.Errorf("order_confirmation_mailer: email client is nil")
	}
	to := strings.TrimSpace(m.toAddress)
	if to == "" {
		return fmt.Errorf("order_confirmation_mailer: to address is empty")
	}

	subject := fmt.Sprintf("Order #%d confirmed", created.ID)
	body := renderConfirmation(snap, created)

	return m.client.Send(ctx, m.fromAddress, to, subject, body)
}

func renderConfirmation(snap order.Snapshot, created order.Created) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Thank you for your order!\n\n")
	fmt.Fprintf(&b, "Order #%d\n", created.ID)
	fmt.Fprintf(&b, "Payment: %s\n\n", order.PaymentMethodCashOnDelivery)

	fmt.Fprintf(&b, "Items:\n")
	for _, it := range snap.Items {
		fmt.Fprintf(&b, "  %s x%d @ %s = %s\n",
			it.Name,
			it.Quantity,
			usecase.FormatAmount(it.UnitPrice),
			usecase.FormatAmount(it.LineTotal()),
		)
	}
	fmt.Fprintf(&b, "\nTotal: %s\n", usecase.FormatAmount(snap.Total))

	if addr := strings.TrimSpace(snap.Location.AddressDetails); addr != "" {
		fmt.Fprintf(&b, "\nDeliver to: %s\n", addr)
	}
	fmt.Fprintf(&b, "Coordinates: %.6f, %.6f\n", snap.Location.Latitude, snap.Location.Longitude)

	return b.String()
}
