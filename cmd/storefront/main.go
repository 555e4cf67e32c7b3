// cmd/storefront/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Conrad-Tinio/CS121-Online-Store/internal/application/query"
	"github.com/Conrad-Tinio/CS121-Online-Store/internal/application/usecase"
	cartdom "github.com/Conrad-Tinio/CS121-Online-Store/internal/domain/cart"
	"github.com/Conrad-Tinio/CS121-Online-Store/internal/domain/catalog"
	"github.com/Conrad-Tinio/CS121-Online-Store/internal/domain/order"
	"github.com/Conrad-Tinio/CS121-Online-Store/internal/infra/config"
	"github.com/Conrad-Tinio/CS121-Online-Store/internal/platform/di"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("[boot] no .env file loaded: %v", err)
	}

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cont, err := di.Build(ctx, cfg)
	if err != nil {
		log.Fatalf("[boot] di init failed: %v", err)
	}
	defer cont.Close()

	log.Printf("[boot] storefront client ready (api=%s, cart backend=%s)", cfg.APIBaseURL, cfg.CartStorageBackend)

	if err := run(ctx, cont); err != nil {
		log.Fatalf("[storefront] %v", err)
	}
}

// run walks one browse-to-checkout flow against the configured backend.
func run(ctx context.Context, cont *di.Container) error {
	// facet metadata feeds the URL codec's canonical ordering
	if defs, err := cont.Facets.Definitions(ctx); err != nil {
		log.Printf("[storefront] facet definitions unavailable, fixed filters only: %v", err)
	} else {
		cont.Catalog.UpdateKnownFacets(catalog.FacetNames(defs))
	}

	if cats, err := cont.Facets.Categories(ctx); err == nil {
		log.Printf("[storefront] %d categories available", len(cats))
	}

	// browse: in-stock products, restored from a shareable URL query
	state := cont.Catalog.Codec().Decode("stock=inStock")
	cont.Catalog.Dispatch(ctx, state)

	view := cont.Catalog.Visible()
	if view.Status == query.StatusError {
		return fmt.Errorf("catalog fetch failed: %s", view.Message)
	}
	log.Printf("[storefront] %d products match %q", len(view.Products), cont.Catalog.Codec().Encode(state))
	if len(view.Products) == 0 {
		return nil
	}

	// add the first product to the cart
	p := view.Products[0]
	if _, err := cont.Cart.AddOrUpdate(ctx, cartdom.Line{
		ProductID:        p.ID,
		Name:             p.ProductName,
		UnitPrice:        float64(p.Price),
		Quantity:         1,
		StockAtLastCheck: p.StockCount,
		ImageRef:         p.Image,
	}); err != nil {
		return err
	}
	log.Printf("[storefront] cart: %d lines, subtotal %s", cont.Cart.Len(), usecase.FormatAmount(cont.Cart.Subtotal()))

	// checkout
	if redirect, err := cont.Checkout.Begin(ctx); err != nil {
		log.Printf("[storefront] checkout unavailable (redirect=%s): %v", redirect, err)
		return nil
	}
	if err := cont.Checkout.SetDeliveryLocation(order.DeliveryLocation{
		Latitude:       14.6537,
		Longitude:      121.0687,
		AddressDetails: "Palma Hall, UP Diliman, Quezon City",
	}); err != nil {
		return err
	}
	created, err := cont.Checkout.Submit(ctx)
	if err != nil {
		log.Printf("[storefront] submit failed: %s", cont.Checkout.ErrorMessage())
		return nil
	}

	snap, _ := cont.Checkout.Snapshot()
	log.Printf("[storefront] order #%d placed, total %s", created.ID, usecase.FormatAmount(snap.Total))

	if o, err := cont.Orders.Order(ctx, created.ID); err == nil {
		log.Printf("[storefront] order status: %s (paid=%t)", o.Status, o.IsPaid)
	}
	return nil
}
