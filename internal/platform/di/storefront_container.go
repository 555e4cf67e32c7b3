// internal/platform/di/storefront_container.go
package di

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/redis/go-redis/v9"

	authout "github.com/Conrad-Tinio/CS121-Online-Store/internal/adapters/out/auth"
	dbout "github.com/Conrad-Tinio/CS121-Online-Store/internal/adapters/out/db"
	fsout "github.com/Conrad-Tinio/CS121-Online-Store/internal/adapters/out/firestore"
	httpout "github.com/Conrad-Tinio/CS121-Online-Store/internal/adapters/out/http"
	kvout "github.com/Conrad-Tinio/CS121-Online-Store/internal/adapters/out/kv"
	mailout "github.com/Conrad-Tinio/CS121-Online-Store/internal/adapters/out/mail"
	redisout "github.com/Conrad-Tinio/CS121-Online-Store/internal/adapters/out/redis"
	"github.com/Conrad-Tinio/CS121-Online-Store/internal/application/query"
	"github.com/Conrad-Tinio/CS121-Online-Store/internal/application/usecase"
	cartdom "github.com/Conrad-Tinio/CS121-Online-Store/internal/domain/cart"
	"github.com/Conrad-Tinio/CS121-Online-Store/internal/domain/filter"
	"github.com/Conrad-Tinio/CS121-Online-Store/internal/infra/config"
	"github.com/Conrad-Tinio/CS121-Online-Store/internal/infra/database"
	firestoreinfra "github.com/Conrad-Tinio/CS121-Online-Store/internal/infra/firestore"
	"github.com/Conrad-Tinio/CS121-Online-Store/internal/infra/secrets"
)

// Container bundles the storefront's wired components so main stays thin.
type Container struct {
	Catalog  *query.CatalogQuery
	Facets   *query.FacetCatalog
	Orders   *query.OrderQuery
	Cart     *usecase.CartStore
	Checkout *usecase.CheckoutOrchestrator

	cleanupFn []func()
}

// Close releases external resources in reverse acquisition order.
func (c *Container) Close() {
	for i := len(c.cleanupFn) - 1; i >= 0; i-- {
		c.cleanupFn[i]()
	}
}

// Build wires adapters, stores and queries from configuration.
func Build(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{}

	// token source shared by the API client and the session verifier
	tokens := authout.StaticTokenSource(cfg.APIToken)

	verifier, tokenProvider, err := buildSession(ctx, cfg, tokens, c)
	if err != nil {
		c.Close()
		return nil, err
	}

	client := httpout.NewStoreAPIClient(cfg.APIBaseURL, tokenProvider, cfg.APITimeout)

	storage, err := buildStorage(ctx, cfg, c)
	if err != nil {
		c.Close()
		return nil, err
	}

	cartStore := usecase.NewCartStore(ctx, storage)

	checkout := usecase.NewCheckoutOrchestrator(cartStore, verifier, client)
	if mailer := buildMailer(ctx, cfg, c); mailer != nil {
		checkout = checkout.WithMailer(mailer)
	}

	c.Catalog = query.NewCatalogQuery(client, filter.Codec{}, cfg.APITimeout)
	c.Facets = query.NewFacetCatalog(client, client)
	c.Orders = query.NewOrderQuery(client)
	c.Cart = cartStore
	c.Checkout = checkout

	return c, nil
}

// buildStorage selects the cart persistence backend.
func buildStorage(ctx context.Context, cfg *config.Config, c *Container) (cartdom.Storage, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.CartStorageBackend)) {
	case "", "file":
		return kvout.NewFileStorage(cfg.CartStorePath)

	case "memory":
		return kvout.NewMemoryStorage(), nil

	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		c.cleanupFn = append(c.cleanupFn, func() { _ = rdb.Close() })
		return redisout.NewCartStorageRedis(rdb, 30*24*time.Hour), nil

	case "postgres":
		db, err := database.NewConnection(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("cart storage postgres: %w", err)
		}
		c.cleanupFn = append(c.cleanupFn, func() { _ = db.Close() })
		return dbout.NewClientStatePG(db.Client), nil

	case "firestore":
		cw, err := firestoreinfra.NewClient(ctx, cfg.FirestoreProjectID, cfg.FirestoreCredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("cart storage firestore: %w", err)
		}
		c.cleanupFn = append(c.cleanupFn, func() { _ = cw.Close() })
		return fsout.NewCartStorageFS(cw.Client), nil

	default:
		return nil, fmt.Errorf("unknown cart storage backend %q", cfg.CartStorageBackend)
	}
}

// buildSession selects the session verifier. Both implementations double
// as the API client's bearer token provider.
func buildSession(ctx context.Context, cfg *config.Config, tokens authout.TokenSource, c *Container) (usecase.SessionVerifier, httpout.TokenProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.SessionVerifier)) {
	case "", "jwt":
		v := authout.NewJWTVerifier(tokens)
		return v, v, nil

	case "firebase":
		app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID})
		if err != nil {
			return nil, nil, fmt.Errorf("init firebase app: %w", err)
		}
		authClient, err := app.Auth(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("init firebase auth: %w", err)
		}
		v := authout.NewFirebaseVerifier(authClient, tokens)
		return v, v, nil

	default:
		return nil, nil, fmt.Errorf("unknown session verifier %q", cfg.SessionVerifier)
	}
}

// buildMailer wires the order confirmation mailer when configured; mail
// is optional and its absence is not an error.
func buildMailer(ctx context.Context, cfg *config.Config, c *Container) usecase.ConfirmationMailer {
	apiKey := cfg.SendGridAPIKey

	if cfg.SendGridSecretID != "" {
		sp, err := secrets.NewSecretProviderSM(ctx, cfg.FirebaseProjectID)
		if err != nil {
			log.Printf("[di] WARN: secret manager unavailable, mail disabled: %v", err)
			return nil
		}
		c.cleanupFn = append(c.cleanupFn, func() { _ = sp.Close() })
		key, err := sp.Get(ctx, cfg.SendGridSecretID)
		if err != nil {
			log.Printf("[di] WARN: sendgrid secret unreadable, mail disabled: %v", err)
			return nil
		}
		apiKey = key
	}

	if apiKey == "" || cfg.MailTo == "" {
		return nil
	}
	return mailout.NewOrderConfirmationMailer(mailout.NewSendGridClient(apiKey), cfg.MailFrom, cfg.MailTo)
}
