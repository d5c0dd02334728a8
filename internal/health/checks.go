package health

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hellofresh/health-go/v5"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
	"github.com/javiersolis/bookstore-admin-gateway/internal/config"
)

func NewHealthHandler(cfg *config.Config) (*health.Health, error) {

	h, err := health.New(
		health.WithComponent(health.Component{

			Name:    "bookstore-admin-gateway",
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(
			health.Config{
				Name:      "redis",
				Timeout:   2 * time.Second,
				SkipOnErr: false,
				Check: healthRedis.New(
					healthRedis.Config{
						DSN: cfg.RedisConnect.URL,
					},
				),
			},
			upstreamCheck("catalog", cfg.Upstreams.CatalogURL),
			upstreamCheck("authors", cfg.Upstreams.AuthorsURL),
			upstreamCheck("cart", cfg.Upstreams.CartURL),
			upstreamCheck("identity", cfg.Upstreams.IdentityURL),
		),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}

// upstreamCheck probes an upstream's base URL. Any HTTP answer counts as
// reachable; only transport failures mark the dependency down.
func upstreamCheck(name, baseURL string) health.Config {
	return health.Config{
		Name:      name,
		Timeout:   5 * time.Second,
		SkipOnErr: true,
		Check: func(ctx context.Context) error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
			if err != nil {
				return fmt.Errorf("failed to build probe for %s: %w", name, err)
			}

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return fmt.Errorf("failed to reach %s: %w", name, err)
			}
			resp.Body.Close()

			return nil
		},
	}
}
