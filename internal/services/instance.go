// Package services implements the droplet operations behind the CLI
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/digitalocean/godo"

	"github.com/boxalarm/dropletforge/internal/compute"
	"github.com/boxalarm/dropletforge/internal/constants"
	"github.com/boxalarm/dropletforge/internal/keygen"
	"github.com/boxalarm/dropletforge/internal/logger"
	"github.com/boxalarm/dropletforge/internal/prompt"
	"github.com/boxalarm/dropletforge/internal/types"
	"github.com/boxalarm/dropletforge/internal/ui"
)

// listPageSize is the largest page the droplets endpoint accepts
const listPageSize = 200

// CreateRequest describes a droplet to create
type CreateRequest struct {
	Name   string
	Region string
	Size   string
	Image  string
}

// CreateResult is a droplet that is active and reachable
type CreateResult struct {
	ID       int
	PublicIP string
}

// DestroyOptions controls Destroy
type DestroyOptions struct {
	// Confirmed skips the interactive confirmation
	Confirmed bool
}

// InstanceOptions configures an Instance service
type InstanceOptions struct {
	SSHDir       string
	PollInterval time.Duration
	PollTimeout  time.Duration
}

// Instance manages the lifecycle of droplets
type Instance struct {
	client   types.DOClient
	keys     *SSHKeyService
	prompter prompt.Prompter
	printer  *ui.Printer
	opts     InstanceOptions
}

// NewInstanceService creates a new instance service
func NewInstanceService(client types.DOClient, prompter prompt.Prompter, printer *ui.Printer, opts InstanceOptions) *Instance {
	return &Instance{
		client:   client,
		keys:     NewSSHKeyService(client.Keys(), opts.SSHDir, printer),
		prompter: prompter,
		printer:  printer,
		opts:     opts,
	}
}

// Create provisions an SSH key, creates the droplet and waits until it is
// active with a public IPv4 address. The key is left in place if the
// droplet cannot be created.
func (s *Instance) Create(ctx context.Context, req CreateRequest) (CreateResult, error) {
	if err := types.ValidateInstanceName(req.Name); err != nil {
		return CreateResult{}, err
	}

	keyID, err := s.keys.Provision(ctx, req.Name)
	if err != nil {
		return CreateResult{}, err
	}

	droplet, _, err := s.client.Droplets().Create(ctx, &godo.DropletCreateRequest{
		Name:    req.Name,
		Region:  req.Region,
		Size:    req.Size,
		Image:   godo.DropletCreateImage{Slug: req.Image},
		SSHKeys: []godo.DropletCreateSSHKey{{ID: keyID}},
	})
	if err != nil {
		return CreateResult{}, fmt.Errorf("failed to create droplet %s: %w", req.Name, err)
	}
	if droplet == nil {
		return CreateResult{}, fmt.Errorf("failed to create droplet %s: empty response", req.Name)
	}

	logger.DebugWithFields("droplet created", map[string]interface{}{
		"droplet_id": droplet.ID,
		"name":       req.Name,
		"region":     req.Region,
		"size":       req.Size,
	})
	s.printer.Info("Droplet '%s' created! (ID: %d)", req.Name, droplet.ID)
	s.printer.Progress("\nWaiting for droplet to become active...")

	inst, err := s.wait(ctx, droplet.ID, (*types.Instance).IsReady)
	s.printer.Newline()
	if err != nil {
		return CreateResult{}, fmt.Errorf("droplet %d did not become ready: %w", droplet.ID, err)
	}

	ip, _ := inst.PublicIPv4()
	s.printer.Newline()
	s.printer.Success(" Droplet is ready!")
	s.printer.Info("Public IP: %s", s.printer.Accent(ip))

	return CreateResult{ID: inst.ID, PublicIP: ip}, nil
}

// Destroy permanently deletes a droplet after the operator types "yes".
// Any other answer returns ErrAborted without calling the provider.
func (s *Instance) Destroy(ctx context.Context, id int, opts DestroyOptions) error {
	s.printer.Error("WARNING: This will permanently delete droplet ID %d!", id)

	if !opts.Confirmed {
		answer, err := s.prompter.Input(ctx, "Type 'yes' to confirm:")
		if errors.Is(err, prompt.ErrAborted) {
			return ErrAborted
		}
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if answer != "yes" {
			return ErrAborted
		}
	}

	if _, err := s.client.Droplets().Delete(ctx, id); err != nil {
		if compute.IsNotFound(err) {
			return fmt.Errorf("droplet %d not found: %w", id, err)
		}
		return fmt.Errorf("failed to destroy droplet %d: %w", id, err)
	}

	logger.DebugWithFields("droplet destroyed", map[string]interface{}{"droplet_id": id})
	s.printer.Success("Droplet '%d' destroyed successfully", id)
	return nil
}

// PowerOff shuts a droplet down and waits until it reports off
func (s *Instance) PowerOff(ctx context.Context, id int) error {
	if _, _, err := s.client.DropletActions().Shutdown(ctx, id); err != nil {
		return fmt.Errorf("failed to shutdown droplet %d: %w", id, err)
	}
	s.printer.Info("Sent shutdown command to droplet %d", id)
	s.printer.Progress(" Waiting for shutdown...")

	_, err := s.wait(ctx, id, (*types.Instance).IsOff)
	s.printer.Newline()
	if err != nil {
		return fmt.Errorf("droplet %d did not power off: %w", id, err)
	}

	s.printer.Error("Droplet is now OFF")
	return nil
}

// PowerOn boots a droplet, waits until it is active and prints how to reach it
func (s *Instance) PowerOn(ctx context.Context, id int) error {
	if _, _, err := s.client.DropletActions().PowerOn(ctx, id); err != nil {
		return fmt.Errorf("failed to power on droplet %d: %w", id, err)
	}
	s.printer.Info("Sent power on command to droplet %d", id)
	s.printer.Progress(" Waiting for power on...")

	_, err := s.wait(ctx, id, (*types.Instance).IsActive)
	s.printer.Newline()
	if err != nil {
		return fmt.Errorf("droplet %d did not power on: %w", id, err)
	}
	s.printer.Success("Droplet is now ON")

	cmd, err := s.SSHCommand(ctx, id)
	if errors.Is(err, ErrNoPublicIP) {
		s.printer.Warn("Droplet %d has no public IP yet - run --ssh %d later", id, id)
		return nil
	}
	if err != nil {
		return err
	}
	s.printer.SSHCommand(cmd)
	return nil
}

// SSHCommand returns the ssh invocation for a droplet, using the key file
// named after it. ErrNoPublicIP is returned when it has no public address.
func (s *Instance) SSHCommand(ctx context.Context, id int) (string, error) {
	inst, err := s.get(ctx, id)
	if err != nil {
		return "", err
	}

	ip, ok := inst.PublicIPv4()
	if !ok {
		return "", fmt.Errorf("droplet %d: %w", id, ErrNoPublicIP)
	}
	return SSHCommandFor(s.opts.SSHDir, inst.Name, ip), nil
}

// SSHCommandFor formats the ssh invocation for a droplet name and address
func SSHCommandFor(sshDir, name, ip string) string {
	return fmt.Sprintf("ssh -i %s %s@%s", keygen.PrivateKeyPath(sshDir, name), constants.SSHUser, ip)
}

// List returns every droplet in the account, following pagination
func (s *Instance) List(ctx context.Context) ([]types.InstanceSummary, error) {
	opt := &godo.ListOptions{Page: 1, PerPage: listPageSize}
	summaries := make([]types.InstanceSummary, 0)

	for {
		droplets, resp, err := s.client.Droplets().List(ctx, opt)
		if err != nil {
			return nil, fmt.Errorf("failed to list droplets: %w", err)
		}

		for i := range droplets {
			summaries = append(summaries, types.NewInstance(&droplets[i]).Summary())
		}

		if resp == nil || resp.Links == nil || resp.Links.IsLastPage() {
			break
		}

		page, err := resp.Links.CurrentPage()
		if err != nil {
			return nil, fmt.Errorf("failed to read droplet page: %w", err)
		}
		opt.Page = page + 1
	}

	logger.Debugf("listed %d droplets", len(summaries))
	return summaries, nil
}

func (s *Instance) get(ctx context.Context, id int) (*types.Instance, error) {
	droplet, _, err := s.client.Droplets().Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get droplet %d: %w", id, err)
	}
	if droplet == nil {
		return nil, fmt.Errorf("failed to get droplet %d: empty response", id)
	}
	return types.NewInstance(droplet), nil
}

func (s *Instance) wait(ctx context.Context, id int, done func(*types.Instance) bool) (*types.Instance, error) {
	fetch := func(ctx context.Context) (*types.Instance, error) {
		inst, err := s.get(ctx, id)
		if err != nil {
			return nil, err
		}
		logger.DebugWithFields("polled droplet", map[string]interface{}{
			"droplet_id": id,
			"status":     inst.Status,
		})
		return inst, nil
	}

	return waitFor(ctx, s.opts.PollInterval, s.opts.PollTimeout, fetch, done, func() {
		s.printer.Progress(".")
	})
}
