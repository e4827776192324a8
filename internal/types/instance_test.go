package types

import (
	"testing"

	"github.com/digitalocean/godo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInstance(t *testing.T) {
	droplet := &godo.Droplet{
		ID:     42,
		Name:   "test-server",
		Status: "active",
		Region: &godo.Region{Slug: "nyc1"},
		Size:   &godo.Size{Slug: "s-1vcpu-1gb"},
		Image:  &godo.Image{Slug: "ubuntu-24-04-x64"},
		Networks: &godo.Networks{
			V4: []godo.NetworkV4{
				{Type: "private", IPAddress: "10.0.0.5"},
				{Type: "public", IPAddress: "203.0.113.9"},
			},
		},
	}

	inst := NewInstance(droplet)
	require.NotNil(t, inst)
	assert.Equal(t, 42, inst.ID)
	assert.Equal(t, "test-server", inst.Name)
	assert.Equal(t, InstanceStatusActive, inst.Status)
	assert.Equal(t, "nyc1", inst.Region)
	assert.Equal(t, "s-1vcpu-1gb", inst.Size)
	assert.Equal(t, "ubuntu-24-04-x64", inst.Image)
	assert.Len(t, inst.Networks, 2)

	assert.Nil(t, NewInstance(nil))
}

func TestInstance_PublicIPv4(t *testing.T) {
	tests := []struct {
		name     string
		networks []Network
		wantIP   string
		wantOK   bool
	}{
		{
			name: "public after private",
			networks: []Network{
				{Type: NetworkPrivate, IPAddress: "10.0.0.5"},
				{Type: NetworkPublic, IPAddress: "203.0.113.9"},
			},
			wantIP: "203.0.113.9",
			wantOK: true,
		},
		{
			name: "first public wins",
			networks: []Network{
				{Type: NetworkPublic, IPAddress: "203.0.113.9"},
				{Type: NetworkPublic, IPAddress: "203.0.113.10"},
			},
			wantIP: "203.0.113.9",
			wantOK: true,
		},
		{
			name:     "private only",
			networks: []Network{{Type: NetworkPrivate, IPAddress: "10.0.0.5"}},
		},
		{
			name: "no networks",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst := &Instance{Networks: tt.networks}
			ip, ok := inst.PublicIPv4()
			assert.Equal(t, tt.wantIP, ip)
			assert.Equal(t, tt.wantOK, ok)
		})
	}

	var missing *Instance
	ip, ok := missing.PublicIPv4()
	assert.Empty(t, ip)
	assert.False(t, ok)
}

func TestInstance_Readiness(t *testing.T) {
	public := []Network{{Type: NetworkPublic, IPAddress: "203.0.113.9"}}

	assert.False(t, (&Instance{Status: InstanceStatusNew, Networks: public}).IsReady())
	assert.False(t, (&Instance{Status: InstanceStatusActive}).IsReady())
	assert.True(t, (&Instance{Status: InstanceStatusActive, Networks: public}).IsReady())
	assert.True(t, (&Instance{Status: InstanceStatusOff}).IsOff())
	assert.False(t, (&Instance{Status: InstanceStatusActive}).IsOff())
}

func TestInstance_Summary(t *testing.T) {
	inst := &Instance{ID: 7, Name: "box", Status: InstanceStatusOff}
	assert.Equal(t, InstanceSummary{ID: 7, Name: "box", Status: InstanceStatusOff}, inst.Summary())
}

func TestValidateInstanceName(t *testing.T) {
	valid := []string{"test-server", "a", "web01.example"}
	for _, name := range valid {
		assert.NoError(t, ValidateInstanceName(name), name)
	}

	invalid := []string{"", "-leading", "trailing-", "../escape", "with space", "under_score"}
	for _, name := range invalid {
		assert.Error(t, ValidateInstanceName(name), name)
	}
}
