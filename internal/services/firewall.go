package services

import (
	"context"

	"github.com/digitalocean/godo"

	"github.com/boxalarm/dropletforge/internal/compute"
	"github.com/boxalarm/dropletforge/internal/constants"
	"github.com/boxalarm/dropletforge/internal/logger"
	"github.com/boxalarm/dropletforge/internal/types"
	"github.com/boxalarm/dropletforge/internal/ui"
)

// FirewallResult describes what Provision did
type FirewallResult int

const (
	// FirewallCreated means a new firewall now guards the droplet
	FirewallCreated FirewallResult = iota
	// FirewallSkipped means no allowed IP was given so nothing was sent
	FirewallSkipped
	// FirewallExists means a firewall with the same name was already there
	FirewallExists
	// FirewallFailed means the provider rejected the request
	FirewallFailed
)

func (r FirewallResult) String() string {
	switch r {
	case FirewallCreated:
		return "created"
	case FirewallSkipped:
		return "skipped"
	case FirewallExists:
		return "exists"
	case FirewallFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FirewallService restricts inbound SSH on new droplets
type FirewallService struct {
	firewalls types.FirewallService
	printer   *ui.Printer
}

// NewFirewallService creates a new firewall service
func NewFirewallService(firewalls types.FirewallService, printer *ui.Printer) *FirewallService {
	return &FirewallService{
		firewalls: firewalls,
		printer:   printer,
	}
}

// FirewallName returns the firewall name used for a droplet
func FirewallName(instanceName string) string {
	return constants.FirewallPrefix + instanceName
}

// FirewallRequest builds the rule set for a droplet: SSH from allowedIP only,
// everything allowed outbound.
func FirewallRequest(instanceID int, instanceName, allowedIP string) *godo.FirewallRequest {
	anywhere := &godo.Destinations{
		Addresses: []string{constants.AllowAllCIDR, constants.AllowAllCIDRv6},
	}

	return &godo.FirewallRequest{
		Name: FirewallName(instanceName),
		InboundRules: []godo.InboundRule{
			{
				Protocol:  "tcp",
				PortRange: "22",
				Sources:   &godo.Sources{Addresses: []string{allowedIP}},
			},
		},
		OutboundRules: []godo.OutboundRule{
			{Protocol: "tcp", PortRange: "0", Destinations: anywhere},
			{Protocol: "udp", PortRange: "0", Destinations: anywhere},
			{Protocol: "icmp", Destinations: anywhere},
		},
		DropletIDs: []int{instanceID},
	}
}

// Provision creates the droplet's firewall. Provider failures are reported and
// reflected in the result but never returned; only cancellation is.
func (s *FirewallService) Provision(ctx context.Context, instanceID int, instanceName, allowedIP string) (FirewallResult, error) {
	if allowedIP == "" {
		s.printer.Warn("No valid IP - skipping firewall")
		return FirewallSkipped, nil
	}

	name := FirewallName(instanceName)
	s.printer.Info("Creating firewall: %s", name)

	fw, _, err := s.firewalls.Create(ctx, FirewallRequest(instanceID, instanceName, allowedIP))
	if err != nil {
		if compute.IsDuplicateName(err) {
			s.printer.Warn("A firewall with the name '%s' already exists - skipping", name)
			return FirewallExists, nil
		}

		if ctx.Err() != nil {
			return FirewallFailed, ctx.Err()
		}

		logger.WarnWithFields("firewall creation failed", map[string]interface{}{
			"droplet_id":   instanceID,
			"firewall":     name,
			"status":       compute.StatusCode(err),
			"rate_limited": compute.IsRateLimited(err),
		})
		s.printer.Warn("An error occurred - no firewall was created: %v", err)
		return FirewallFailed, nil
	}

	logger.DebugWithFields("created firewall", map[string]interface{}{
		"droplet_id":  instanceID,
		"firewall_id": fw.ID,
	})
	s.printer.Info("Firewall created successfully!")
	s.printer.Info("Allowed IP: %s", s.printer.Accent(allowedIP))
	return FirewallCreated, nil
}
