package commands

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/boxalarm/dropletforge/test/mocks"
)

func TestErrorHint(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{
			name:     "unauthorized",
			err:      fmt.Errorf("failed to list droplets: %w", mocks.NewAPIError(http.StatusUnauthorized, "Unable to authenticate you")),
			contains: "DIGITALOCEAN_TOKEN",
		},
		{
			name:     "rate limited",
			err:      fmt.Errorf("failed to create droplet web: %w", mocks.ErrRateLimit),
			contains: "rate limit",
		},
		{name: "not found", err: mocks.NewAPIError(http.StatusNotFound, "not found")},
		{name: "plain error", err: errors.New("boom")},
		{name: "nil", err: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hint := ErrorHint(tt.err)
			if tt.contains == "" {
				assert.Empty(t, hint)
				return
			}
			assert.Contains(t, hint, tt.contains)
		})
	}
}
