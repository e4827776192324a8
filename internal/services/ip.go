package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"github.com/boxalarm/dropletforge/internal/constants"
	"github.com/boxalarm/dropletforge/internal/logger"
	"github.com/boxalarm/dropletforge/internal/prompt"
	"github.com/boxalarm/dropletforge/internal/ui"
)

// Echo services answer browsers with HTML, so identify as curl to get plain text.
const ipLookupUserAgent = "curl/8.5.0"

// Responses larger than this are not an IP address
const maxIPResponseBytes = 256

// IPResolver determines the address that is allowed to reach a droplet over SSH
type IPResolver struct {
	httpClient *http.Client
	services   []string
	prompter   prompt.Prompter
	printer    *ui.Printer
}

// NewIPResolver creates a resolver that queries services in order, giving
// each request timeout before moving on.
func NewIPResolver(services []string, timeout time.Duration, prompter prompt.Prompter, printer *ui.Printer) *IPResolver {
	return &IPResolver{
		httpClient: &http.Client{Timeout: timeout},
		services:   services,
		prompter:   prompter,
		printer:    printer,
	}
}

// Resolve returns the trimmed override when one is given. Otherwise it asks
// the echo services for the caller's public IP and falls back to asking the
// operator. An empty answer or "all" opens SSH to every address.
// Lookup failures are never returned; only a failed prompt is.
func (r *IPResolver) Resolve(ctx context.Context, override string) (string, error) {
	if ip := strings.TrimSpace(override); ip != "" {
		r.printer.Info("Using provided IP: %s", ip)
		return ip, nil
	}

	for _, service := range r.services {
		ip, err := r.lookup(ctx, service)
		if err != nil {
			logger.DebugWithFields("IP lookup failed", map[string]interface{}{
				"service": service,
				"error":   err.Error(),
			})
			continue
		}
		r.printer.Info("Detected your networks public IP: %s", r.printer.Accent(ip))
		return ip, nil
	}

	r.printer.Warn("Failed to detect IP!")
	answer, err := r.prompter.Input(ctx, "     Enter IP manually (or 'all' for 0.0.0.0/0):")
	if err != nil {
		return "", fmt.Errorf("failed to read allowed IP: %w", err)
	}

	answer = strings.TrimSpace(answer)
	if answer == "" || strings.EqualFold(answer, "all") {
		return constants.AllowAllCIDR, nil
	}
	return answer, nil
}

func (r *IPResolver) lookup(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", ipLookupUserAgent)
	req.Header.Set("Accept", "text/plain")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxIPResponseBytes))
	if err != nil {
		return "", err
	}

	ip := strings.TrimSpace(string(body))
	if _, err := netip.ParseAddr(ip); err != nil {
		return "", fmt.Errorf("response is not an IP address: %q", ip)
	}
	return ip, nil
}
