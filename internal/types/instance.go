// Package types provides type definitions for the application
package types

import (
	"fmt"
	"regexp"

	"github.com/digitalocean/godo"
)

// InstanceStatus is the lifecycle state DigitalOcean reports for a droplet
type InstanceStatus string

const (
	// InstanceStatusNew is reported while the droplet is being provisioned
	InstanceStatusNew InstanceStatus = "new"
	// InstanceStatusActive is reported once the droplet is running
	InstanceStatusActive InstanceStatus = "active"
	// InstanceStatusOff is reported once the droplet is powered down
	InstanceStatusOff InstanceStatus = "off"
	// InstanceStatusArchive is reported for droplets being destroyed
	InstanceStatusArchive InstanceStatus = "archive"
)

// Network types as tagged by DigitalOcean
const (
	NetworkPublic  = "public"
	NetworkPrivate = "private"
)

// Droplet names double as local key file names, so they are limited to
// hostname characters.
var instanceNameRegex = regexp.MustCompile(`^[a-zA-Z0-9](?:[a-zA-Z0-9.-]{0,253}[a-zA-Z0-9])?$`)

// Network is a single IPv4 address attached to an instance
type Network struct {
	Type      string `json:"type"`
	IPAddress string `json:"ip_address"`
}

// Instance is a read-only view of a droplet as last observed
type Instance struct {
	ID       int            `json:"id"`
	Name     string         `json:"name"`
	Status   InstanceStatus `json:"status"`
	Region   string         `json:"region,omitempty"`
	Size     string         `json:"size,omitempty"`
	Image    string         `json:"image,omitempty"`
	Networks []Network      `json:"networks"`
}

// InstanceSummary is one row of the instance listing
type InstanceSummary struct {
	ID       int
	Name     string
	Status   InstanceStatus
	PublicIP string
}

// NewInstance converts a godo droplet into an Instance
func NewInstance(d *godo.Droplet) *Instance {
	if d == nil {
		return nil
	}

	inst := &Instance{
		ID:     d.ID,
		Name:   d.Name,
		Status: InstanceStatus(d.Status),
	}
	if d.Region != nil {
		inst.Region = d.Region.Slug
	}
	if d.Size != nil {
		inst.Size = d.Size.Slug
	} else {
		inst.Size = d.SizeSlug
	}
	if d.Image != nil {
		inst.Image = d.Image.Slug
	}
	if d.Networks != nil {
		for _, n := range d.Networks.V4 {
			inst.Networks = append(inst.Networks, Network{Type: n.Type, IPAddress: n.IPAddress})
		}
	}
	return inst
}

// PublicIPv4 returns the address of the first public network entry.
// The boolean is false when the instance has no public address yet.
func (i *Instance) PublicIPv4() (string, bool) {
	if i == nil {
		return "", false
	}
	for _, n := range i.Networks {
		if n.Type == NetworkPublic && n.IPAddress != "" {
			return n.IPAddress, true
		}
	}
	return "", false
}

// Summary returns the listing row for the instance; PublicIP is empty when
// no public address exists.
func (i *Instance) Summary() InstanceSummary {
	ip, _ := i.PublicIPv4()
	return InstanceSummary{
		ID:       i.ID,
		Name:     i.Name,
		Status:   i.Status,
		PublicIP: ip,
	}
}

// IsActive reports whether the instance is running
func (i *Instance) IsActive() bool {
	return i != nil && i.Status == InstanceStatusActive
}

// IsReady reports whether the instance is running and reachable over a public address
func (i *Instance) IsReady() bool {
	_, ok := i.PublicIPv4()
	return i.IsActive() && ok
}

// IsOff reports whether the instance is powered down
func (i *Instance) IsOff() bool {
	return i != nil && i.Status == InstanceStatusOff
}

// ValidateInstanceName checks that name is usable both as a droplet name and a key file name
func ValidateInstanceName(name string) error {
	if name == "" {
		return fmt.Errorf("instance name is required")
	}
	if !instanceNameRegex.MatchString(name) {
		return fmt.Errorf("invalid instance name %q: use letters, digits, dots and hyphens only", name)
	}
	return nil
}
