package types

import (
	"context"

	"github.com/digitalocean/godo"
)

// DOClient defines the interface for DigitalOcean client operations
type DOClient interface {
	Droplets() DropletService
	DropletActions() DropletActionService
	Keys() KeyService
	Firewalls() FirewallService
}

// DropletService defines the interface for DigitalOcean droplet operations
type DropletService interface {
	Create(ctx context.Context, createRequest *godo.DropletCreateRequest) (*godo.Droplet, *godo.Response, error)
	Delete(ctx context.Context, dropletID int) (*godo.Response, error)
	Get(ctx context.Context, dropletID int) (*godo.Droplet, *godo.Response, error)
	List(ctx context.Context, opt *godo.ListOptions) ([]godo.Droplet, *godo.Response, error)
}

// DropletActionService defines the interface for droplet power actions
type DropletActionService interface {
	PowerOn(ctx context.Context, dropletID int) (*godo.Action, *godo.Response, error)
	Shutdown(ctx context.Context, dropletID int) (*godo.Action, *godo.Response, error)
}

// KeyService defines the interface for DigitalOcean SSH key operations
type KeyService interface {
	Create(ctx context.Context, createRequest *godo.KeyCreateRequest) (*godo.Key, *godo.Response, error)
}

// FirewallService defines the interface for DigitalOcean firewall operations
type FirewallService interface {
	Create(ctx context.Context, fr *godo.FirewallRequest) (*godo.Firewall, *godo.Response, error)
}
