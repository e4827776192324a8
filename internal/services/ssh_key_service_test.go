package services

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/digitalocean/godo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boxalarm/dropletforge/internal/keygen"
	"github.com/boxalarm/dropletforge/internal/ui"
	"github.com/boxalarm/dropletforge/test/mocks"
)

func TestSSHKeyService_Provision(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".ssh")
	keys := mocks.NewMockKeyService(mocks.NewMockDOClient().StandardResponses)
	var out bytes.Buffer

	id, err := NewSSHKeyService(keys, dir, ui.NewPrinter(&out)).Provision(context.Background(), "test-server")
	require.NoError(t, err)
	assert.Equal(t, mocks.DefaultKeyID1, id)

	require.Len(t, keys.CreateRequests, 1)
	req := keys.CreateRequests[0]
	assert.Equal(t, "test-server", req.Name)
	assert.True(t, strings.HasPrefix(req.PublicKey, "ssh-ed25519 "))

	pub, err := os.ReadFile(filepath.Join(dir, "test-server.pub"))
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSpace(string(pub)), req.PublicKey)

	info, err := os.Stat(filepath.Join(dir, "test-server"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	assert.Contains(t, out.String(), "SSH key created: "+filepath.Join(dir, "test-server.pub"))
	assert.Contains(t, out.String(), "SSH key uploaded to Digital Ocean with ID: 67890")
}

func TestSSHKeyService_ExistingKey(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test-server"), []byte("keep me"), 0o600))
	keys := mocks.NewMockKeyService(mocks.NewMockDOClient().StandardResponses)

	_, err := NewSSHKeyService(keys, dir, ui.NewPrinter(&bytes.Buffer{})).Provision(context.Background(), "test-server")
	assert.ErrorIs(t, err, keygen.ErrKeyExists)
	assert.Empty(t, keys.CreateRequests)

	data, err := os.ReadFile(filepath.Join(dir, "test-server"))
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(data))
}

func TestSSHKeyService_UploadFails(t *testing.T) {
	dir := t.TempDir()
	keys := mocks.NewMockKeyService(mocks.NewMockDOClient().StandardResponses)
	keys.SimulateError(mocks.ErrAuthentication)

	_, err := NewSSHKeyService(keys, dir, ui.NewPrinter(&bytes.Buffer{})).Provision(context.Background(), "test-server")
	require.Error(t, err)
	assert.ErrorIs(t, err, mocks.ErrAuthentication)

	// no cleanup of the local key on upload failure
	_, statErr := os.Stat(filepath.Join(dir, "test-server.pub"))
	assert.NoError(t, statErr)
}

func TestSSHKeyService_EmptyResponse(t *testing.T) {
	keys := mocks.NewMockKeyService(mocks.NewMockDOClient().StandardResponses)
	keys.CreateFunc = func(_ context.Context, _ *godo.KeyCreateRequest) (*godo.Key, *godo.Response, error) {
		return nil, nil, nil
	}
	var out bytes.Buffer

	id, err := NewSSHKeyService(keys, t.TempDir(), ui.NewPrinter(&out)).Provision(context.Background(), "test-server")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
	assert.Zero(t, id)
	assert.NotContains(t, out.String(), "uploaded to Digital Ocean")
}
