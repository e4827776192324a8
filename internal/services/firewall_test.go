package services

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/digitalocean/godo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boxalarm/dropletforge/internal/compute"
	"github.com/boxalarm/dropletforge/internal/logger"
	"github.com/boxalarm/dropletforge/internal/ui"
	"github.com/boxalarm/dropletforge/test/mocks"
)

func TestFirewallRequest(t *testing.T) {
	req := FirewallRequest(42, "test-server", "203.0.113.42")

	assert.Equal(t, "DropletForge-test-server", req.Name)
	assert.Equal(t, []int{42}, req.DropletIDs)

	require.Len(t, req.InboundRules, 1)
	in := req.InboundRules[0]
	assert.Equal(t, "tcp", in.Protocol)
	assert.Equal(t, "22", in.PortRange)
	assert.Equal(t, []string{"203.0.113.42"}, in.Sources.Addresses)

	require.Len(t, req.OutboundRules, 3)
	for i, proto := range []string{"tcp", "udp", "icmp"} {
		out := req.OutboundRules[i]
		assert.Equal(t, proto, out.Protocol)
		assert.Equal(t, []string{"0.0.0.0/0", "::/0"}, out.Destinations.Addresses)
	}
	assert.Equal(t, "0", req.OutboundRules[0].PortRange)
	assert.Empty(t, req.OutboundRules[2].PortRange)
}

func TestFirewallService_Provision(t *testing.T) {
	t.Run("empty_ip_is_noop", func(t *testing.T) {
		fw := mocks.NewMockFirewallService()
		var out bytes.Buffer

		result, err := NewFirewallService(fw, ui.NewPrinter(&out)).Provision(context.Background(), 42, "test-server", "")
		require.NoError(t, err)
		assert.Equal(t, FirewallSkipped, result)
		assert.Empty(t, fw.CreateRequests)
		assert.Contains(t, out.String(), "No valid IP - skipping firewall")
	})

	t.Run("creates_firewall", func(t *testing.T) {
		fw := mocks.NewMockFirewallService()
		var out bytes.Buffer

		result, err := NewFirewallService(fw, ui.NewPrinter(&out)).Provision(context.Background(), 42, "test-server", "203.0.113.42")
		require.NoError(t, err)
		assert.Equal(t, FirewallCreated, result)
		require.Len(t, fw.CreateRequests, 1)
		assert.Equal(t, FirewallRequest(42, "test-server", "203.0.113.42"), fw.CreateRequests[0])
		assert.Contains(t, out.String(), "Firewall created successfully!")
		assert.Contains(t, out.String(), "Allowed IP: 203.0.113.42")
	})

	t.Run("duplicate_name_is_skipped", func(t *testing.T) {
		fw := mocks.NewMockFirewallService()
		fw.SimulateDuplicateName()
		var out bytes.Buffer

		result, err := NewFirewallService(fw, ui.NewPrinter(&out)).Provision(context.Background(), 42, "test-server", "203.0.113.42")
		require.NoError(t, err)
		assert.Equal(t, FirewallExists, result)
		assert.Len(t, fw.CreateRequests, 1)
		assert.Contains(t, out.String(), "'DropletForge-test-server' already exists")
	})

	t.Run("provider_error_is_swallowed", func(t *testing.T) {
		fw := mocks.NewMockFirewallService()
		fw.SimulateError(mocks.ErrRateLimit)
		var out, logs bytes.Buffer
		logger.SetOutput(&logs)
		defer logger.SetOutput(os.Stderr)

		result, err := NewFirewallService(fw, ui.NewPrinter(&out)).Provision(context.Background(), 42, "test-server", "203.0.113.42")
		require.NoError(t, err)
		assert.Equal(t, FirewallFailed, result)
		assert.Contains(t, out.String(), "no firewall was created")
		assert.Contains(t, logs.String(), "firewall creation failed")
		assert.Contains(t, logs.String(), "rate_limited=true")
		assert.Contains(t, logs.String(), "status=429")
	})

	t.Run("cancellation_is_returned", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		fw := mocks.NewMockFirewallService()
		fw.SimulateError(context.Canceled)

		result, err := NewFirewallService(fw, ui.NewPrinter(&bytes.Buffer{})).Provision(ctx, 42, "test-server", "203.0.113.42")
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, FirewallFailed, result)
	})
}

// Exercises the real godo client so the request body matches what the API receives.
func TestFirewallService_ProvisionOverHTTP(t *testing.T) {
	var requests []godo.FirewallRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/firewalls", r.URL.Path)

		var req godo.FirewallRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		requests = append(requests, req)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"firewall": map[string]interface{}{"id": mocks.DefaultFirewallID, "name": req.Name, "status": "waiting"},
		})
	}))
	defer srv.Close()

	client, err := compute.NewDigitalOceanClient(context.Background(), "test-token", compute.WithBaseURL(srv.URL+"/"))
	require.NoError(t, err)

	result, err := NewFirewallService(client.Firewalls(), ui.NewPrinter(&bytes.Buffer{})).
		Provision(context.Background(), 42, "test-server", "203.0.113.42")
	require.NoError(t, err)
	assert.Equal(t, FirewallCreated, result)

	require.Len(t, requests, 1)
	got := requests[0]
	assert.Equal(t, "DropletForge-test-server", got.Name)
	require.Len(t, got.InboundRules, 1)
	assert.Equal(t, "tcp", got.InboundRules[0].Protocol)
	assert.Equal(t, "22", got.InboundRules[0].PortRange)
	assert.Equal(t, []string{"203.0.113.42"}, got.InboundRules[0].Sources.Addresses)
	assert.Equal(t, []int{42}, got.DropletIDs)
}

func TestFirewallService_DuplicateOverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "conflict", "message": "duplicate name"})
	}))
	defer srv.Close()

	client, err := compute.NewDigitalOceanClient(context.Background(), "test-token", compute.WithBaseURL(srv.URL+"/"))
	require.NoError(t, err)

	result, err := NewFirewallService(client.Firewalls(), ui.NewPrinter(&bytes.Buffer{})).
		Provision(context.Background(), 42, "test-server", "203.0.113.42")
	require.NoError(t, err)
	assert.Equal(t, FirewallExists, result)
}

func TestFirewallResult_String(t *testing.T) {
	assert.Equal(t, "created", FirewallCreated.String())
	assert.Equal(t, "skipped", FirewallSkipped.String())
	assert.Equal(t, "exists", FirewallExists.String())
	assert.Equal(t, "failed", FirewallFailed.String())
	assert.Equal(t, "unknown", FirewallResult(99).String())
}
