// Package compute adapts the DigitalOcean API client to the narrow service
// interfaces used by the rest of the application.
package compute

import (
	"context"
	"fmt"

	"github.com/digitalocean/godo"
	"golang.org/x/oauth2"

	"github.com/boxalarm/dropletforge/internal/types"
)

const userAgent = "dropletforge"

// DigitalOceanClient implements types.DOClient on top of godo
type DigitalOceanClient struct {
	client *godo.Client
}

// Option customizes the underlying godo client
type Option = godo.ClientOpt

// WithBaseURL points the client at a different API endpoint
func WithBaseURL(url string) Option {
	return godo.SetBaseURL(url)
}

// NewDigitalOceanClient creates a client authenticated with a bearer token
func NewDigitalOceanClient(ctx context.Context, token string, opts ...Option) (*DigitalOceanClient, error) {
	if token == "" {
		return nil, fmt.Errorf("DigitalOcean API token is empty")
	}

	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))

	opts = append([]Option{godo.SetUserAgent(userAgent)}, opts...)
	client, err := godo.New(httpClient, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create DigitalOcean client: %w", err)
	}

	return &DigitalOceanClient{client: client}, nil
}

// Droplets returns the droplet service
func (c *DigitalOceanClient) Droplets() types.DropletService {
	return c.client.Droplets
}

// DropletActions returns the droplet action service
func (c *DigitalOceanClient) DropletActions() types.DropletActionService {
	return c.client.DropletActions
}

// Keys returns the SSH key service
func (c *DigitalOceanClient) Keys() types.KeyService {
	return c.client.Keys
}

// Firewalls returns the firewall service
func (c *DigitalOceanClient) Firewalls() types.FirewallService {
	return c.client.Firewalls
}
