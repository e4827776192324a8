package commands

import (
	"fmt"

	"github.com/boxalarm/dropletforge/internal/compute"
	"github.com/boxalarm/dropletforge/internal/constants"
)

// ErrorHint returns a follow-up line for provider errors the operator can
// act on, or "" when there is nothing to add.
func ErrorHint(err error) string {
	switch {
	case compute.IsUnauthorized(err):
		return fmt.Sprintf("DigitalOcean rejected the API token - check %s", constants.EnvDigitalOceanToken)
	case compute.IsRateLimited(err):
		return "DigitalOcean rate limit reached - wait a minute and try again"
	default:
		return ""
	}
}
