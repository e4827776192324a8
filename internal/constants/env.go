// Package constants provides centralized definitions of constants used throughout the application
package constants

// Environment variable names
const (
	// EnvDigitalOceanToken is the environment variable holding the DigitalOcean API token
	EnvDigitalOceanToken = "DIGITALOCEAN_TOKEN"

	// EnvLegacyAPIKey is read when EnvDigitalOceanToken is unset
	EnvLegacyAPIKey = "DO_API_KEY"

	EnvRegion       = "DROPLETFORGE_REGION"
	EnvSize         = "DROPLETFORGE_SIZE"
	EnvImage        = "DROPLETFORGE_IMAGE"
	EnvSSHDir       = "DROPLETFORGE_SSH_DIR"
	EnvPollInterval = "DROPLETFORGE_POLL_INTERVAL"
	EnvPollTimeout  = "DROPLETFORGE_POLL_TIMEOUT"

	// EnvIPLookupTimeout bounds each public IP echo request
	EnvIPLookupTimeout = "DROPLETFORGE_IP_LOOKUP_TIMEOUT"
)

// Naming and network constants
const (
	// FirewallPrefix is prepended to the droplet name to form its firewall name
	FirewallPrefix = "DropletForge-"

	// AllowAllCIDR is the sentinel allowed-IP value that opens SSH to every address
	AllowAllCIDR = "0.0.0.0/0"

	// AllowAllCIDRv6 is the IPv6 counterpart used for outbound rules
	AllowAllCIDRv6 = "::/0"

	// SSHUser is the login user of freshly created droplets
	SSHUser = "root"
)
