package compute

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/digitalocean/godo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient starts an API stub and returns a real client pointed at it
func newTestClient(t *testing.T, handler http.HandlerFunc) *DigitalOceanClient {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewDigitalOceanClient(context.Background(), "test-token", WithBaseURL(srv.URL+"/"))
	require.NoError(t, err)
	return client
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestNewDigitalOceanClient(t *testing.T) {
	t.Run("empty_token", func(t *testing.T) {
		client, err := NewDigitalOceanClient(context.Background(), "")
		assert.Error(t, err)
		assert.Nil(t, client)
	})

	t.Run("sends_bearer_token", func(t *testing.T) {
		var gotAuth, gotAgent string
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotAgent = r.Header.Get("User-Agent")
			writeJSON(t, w, http.StatusOK, map[string]interface{}{
				"droplet": map[string]interface{}{"id": 42, "name": "test-server", "status": "active"},
			})
		})

		droplet, _, err := client.Droplets().Get(context.Background(), 42)
		require.NoError(t, err)
		assert.Equal(t, 42, droplet.ID)
		assert.Equal(t, "Bearer test-token", gotAuth)
		assert.Contains(t, gotAgent, userAgent)
	})
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		message       string
		wantDuplicate bool
		wantNotFound  bool
		wantUnauth    bool
	}{
		{name: "duplicate firewall", status: http.StatusConflict, message: "duplicate name", wantDuplicate: true},
		{name: "not found", status: http.StatusNotFound, message: "The resource you were accessing could not be found.", wantNotFound: true},
		{name: "unauthorized", status: http.StatusUnauthorized, message: "Unable to authenticate you", wantUnauth: true},
		{name: "validation", status: http.StatusUnprocessableEntity, message: "invalid source address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, tt.status, map[string]string{"id": "error", "message": tt.message})
			})

			_, _, err := client.Firewalls().Create(context.Background(), &godo.FirewallRequest{Name: "DropletForge-test"})
			require.Error(t, err)

			assert.Equal(t, tt.wantDuplicate, IsDuplicateName(err))
			assert.Equal(t, tt.wantNotFound, IsNotFound(err))
			assert.Equal(t, tt.wantUnauth, IsUnauthorized(err))
			assert.Equal(t, tt.status, StatusCode(err))
		})
	}
}

func TestIsDuplicateName_PlainErrors(t *testing.T) {
	assert.False(t, IsDuplicateName(nil))
	assert.True(t, IsDuplicateName(errors.New("409 duplicate name")))
	apiErr := &godo.ErrorResponse{
		Response: &http.Response{
			StatusCode: http.StatusConflict,
			Request:    &http.Request{Method: http.MethodPost, URL: &url.URL{Path: "/v2/firewalls"}},
		},
		Message: "Duplicate name",
	}
	assert.True(t, IsDuplicateName(fmt.Errorf("create firewall: %w", apiErr)))
	assert.False(t, IsDuplicateName(errors.New("connection reset")))
	assert.Equal(t, 0, StatusCode(errors.New("connection reset")))
	assert.False(t, IsRateLimited(errors.New("connection reset")))
}
