package services

import (
	"context"
	"fmt"

	"github.com/digitalocean/godo"

	"github.com/boxalarm/dropletforge/internal/keygen"
	"github.com/boxalarm/dropletforge/internal/logger"
	"github.com/boxalarm/dropletforge/internal/types"
	"github.com/boxalarm/dropletforge/internal/ui"
)

// SSHKeyService generates droplet key pairs and registers them with DigitalOcean
type SSHKeyService struct {
	keys    types.KeyService
	sshDir  string
	printer *ui.Printer
}

// NewSSHKeyService creates a new SSH key service writing keys under sshDir
func NewSSHKeyService(keys types.KeyService, sshDir string, printer *ui.Printer) *SSHKeyService {
	return &SSHKeyService{
		keys:    keys,
		sshDir:  sshDir,
		printer: printer,
	}
}

// Provision writes <sshDir>/<name> and <sshDir>/<name>.pub, uploads the
// public half under name and returns the DigitalOcean key ID.
// Existing key files are never overwritten.
func (s *SSHKeyService) Provision(ctx context.Context, name string) (int, error) {
	_, pubPath, err := keygen.WriteKeyPair(s.sshDir, name)
	if err != nil {
		return 0, fmt.Errorf("failed to generate ssh key %s: %w", name, err)
	}
	s.printer.Info("SSH key created: %s", pubPath)

	publicKey, err := keygen.ReadPublicKey(pubPath)
	if err != nil {
		return 0, err
	}

	key, _, err := s.keys.Create(ctx, &godo.KeyCreateRequest{
		Name:      name,
		PublicKey: publicKey,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to upload ssh key %s: %w", name, err)
	}
	if key == nil {
		return 0, fmt.Errorf("failed to upload ssh key %s: empty response", name)
	}

	logger.DebugWithFields("registered ssh key", map[string]interface{}{
		"name":        name,
		"key_id":      key.ID,
		"fingerprint": key.Fingerprint,
	})
	s.printer.Info("SSH key uploaded to Digital Ocean with ID: %d", key.ID)
	return key.ID, nil
}
