package mocks

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/digitalocean/godo"
)

// Default test values for droplets
var (
	DefaultDropletID1     = 12345
	DefaultDropletID2     = 12346
	DefaultDropletName1   = "test-droplet-1"
	DefaultDropletName2   = "test-droplet-2"
	DefaultDropletIP1     = "192.0.2.1"
	DefaultDropletIP2     = "192.0.2.2"
	DefaultPrivateIP      = "10.0.0.5"
	DefaultDropletRegion  = "nyc1"
	DefaultDropletSize    = "s-1vcpu-1gb"
	DefaultDropletImage   = "ubuntu-24-04-x64"
	DefaultDropletStatus  = "active"
	DefaultFirewallID     = "fb6045f1-cf1d-4ca3-bfac-18832663025b"
	DefaultActionID       = 36804636
	DefaultKeyID1         = 67890
	DefaultKeyFingerprint = "3b:16:bf:e4:8b:00:8b:b8:59:8c:a9:d3:f0:19:45:fa"
)

// Errors returned by the Simulate* helpers. They carry HTTP responses so
// that callers classifying by status code see realistic values.
var (
	ErrDropletNotFound = NewAPIError(http.StatusNotFound, "The resource you were accessing could not be found.")
	ErrRateLimit       = NewAPIError(http.StatusTooManyRequests, "API rate limit exceeded")
	ErrAuthentication  = NewAPIError(http.StatusUnauthorized, "Unable to authenticate you")
	ErrDuplicateName   = NewAPIError(http.StatusConflict, "duplicate name")
)

// NewAPIError builds a godo error response as the API would return it
func NewAPIError(status int, message string) *godo.ErrorResponse {
	return &godo.ErrorResponse{
		Response: &http.Response{
			StatusCode: status,
			Status:     fmt.Sprintf("%d %s", status, http.StatusText(status)),
			Request: &http.Request{
				Method: http.MethodGet,
				URL:    &url.URL{Scheme: "https", Host: "api.digitalocean.com", Path: "/v2"},
			},
		},
		Message: message,
	}
}

// StandardResponses contains all standard mock responses
type StandardResponses struct {
	Droplets StandardDropletResponses
	Keys     StandardKeyResponses
}

// StandardDropletResponses contains all standard mock responses for droplets
type StandardDropletResponses struct {
	// Single droplet responses
	DefaultDroplet *godo.Droplet

	// Multiple droplet responses
	DefaultDropletList []godo.Droplet
}

// StandardKeyResponses contains all standard mock responses for keys
type StandardKeyResponses struct {
	DefaultKey *godo.Key
}

// NewDroplet builds a droplet with the given status and optional public IP
func NewDroplet(id int, name, status, publicIP string) *godo.Droplet {
	networks := []godo.NetworkV4{
		{Type: "private", IPAddress: DefaultPrivateIP},
	}
	if publicIP != "" {
		networks = append(networks, godo.NetworkV4{Type: "public", IPAddress: publicIP})
	}

	return &godo.Droplet{
		ID:       id,
		Name:     name,
		Status:   status,
		Networks: &godo.Networks{V4: networks},
		Region:   &godo.Region{Slug: DefaultDropletRegion},
		Size:     &godo.Size{Slug: DefaultDropletSize},
		Image:    &godo.Image{Slug: DefaultDropletImage},
	}
}

// newStandardResponses creates a new set of standard responses
func newStandardResponses() *StandardResponses {
	return &StandardResponses{
		Droplets: StandardDropletResponses{
			DefaultDroplet: NewDroplet(DefaultDropletID1, DefaultDropletName1, DefaultDropletStatus, DefaultDropletIP1),
			DefaultDropletList: []godo.Droplet{
				*NewDroplet(DefaultDropletID1, DefaultDropletName1, DefaultDropletStatus, DefaultDropletIP1),
				*NewDroplet(DefaultDropletID2, DefaultDropletName2, "off", DefaultDropletIP2),
			},
		},
		Keys: StandardKeyResponses{
			DefaultKey: &godo.Key{
				ID:          DefaultKeyID1,
				Fingerprint: DefaultKeyFingerprint,
			},
		},
	}
}
