package test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/boxalarm/dropletforge/internal/compute"
	"github.com/boxalarm/dropletforge/internal/prompt"
	"github.com/boxalarm/dropletforge/internal/services"
	"github.com/boxalarm/dropletforge/internal/types"
	"github.com/boxalarm/dropletforge/internal/ui"
	"github.com/boxalarm/dropletforge/test/mocks"
)

// TestEnvironment encapsulates all components needed for integration testing.
// It provides a complete test setup with:
//   - A DigitalOcean client, either function mocks or a real godo client
//     talking to FakeAPI
//   - A temporary SSH directory
//   - Captured operator output and scripted operator input
type TestEnvironment struct {
	t *testing.T // The testing.T instance for this environment

	// Provider components
	Client       types.DOClient
	MockDOClient *mocks.MockDOClient
	API          *FakeAPI

	// Operator components
	SSHDir   string
	Out      *bytes.Buffer
	Printer  *ui.Printer
	Prompter prompt.Prompter

	input       string
	pollTimeout time.Duration
	useFakeAPI  bool

	// Context management
	ctx        context.Context
	cancelFunc context.CancelFunc

	// Cleanup function
	cleanup func()
}

// NewTestEnvironment creates a new test environment with the given options.
// The environment must be cleaned up after use by calling Cleanup.
func NewTestEnvironment(t *testing.T, opts ...Option) *TestEnvironment {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), DefaultTestTimeout)

	env := &TestEnvironment{
		t:           t,
		ctx:         ctx,
		cancelFunc:  cancel,
		pollTimeout: DefaultPollTimeout,
		SSHDir:      filepath.Join(t.TempDir(), ".ssh"),
		Out:         &bytes.Buffer{},
	}

	env.cleanup = func() {
		if env.API != nil {
			env.API.Close()
		}
		if env.cancelFunc != nil {
			env.cancelFunc()
		}
	}

	for _, opt := range opts {
		opt(env)
	}

	env.Printer = ui.NewPrinter(env.Out)
	env.Prompter = prompt.NewLinePrompter(strings.NewReader(env.input), env.Out)

	if env.useFakeAPI {
		env.API = NewFakeAPI()
		client, err := compute.NewDigitalOceanClient(env.ctx, FakeAPIToken, compute.WithBaseURL(env.API.URL()))
		require.NoError(t, err, "Failed to create DigitalOcean client")
		env.Client = client
	} else {
		env.MockDOClient = mocks.NewMockDOClient()
		env.Client = env.MockDOClient
	}

	return env
}

// Context returns the environment's context, which is automatically
// canceled when the environment is cleaned up.
func (e *TestEnvironment) Context() context.Context {
	return e.ctx
}

// Cleanup tears down the test environment, releasing all resources.
// This should be deferred immediately after creating the environment.
func (e *TestEnvironment) Cleanup() {
	if e.cleanup != nil {
		e.cleanup()
	}
}

// Require returns a require.Assertions instance for this environment.
func (e *TestEnvironment) Require() *require.Assertions {
	return require.New(e.t)
}

// T returns the testing.T instance for this environment.
func (e *TestEnvironment) T() *testing.T {
	return e.t
}

// InstanceService returns an instance service wired to this environment
func (e *TestEnvironment) InstanceService() *services.Instance {
	return services.NewInstanceService(e.Client, e.Prompter, e.Printer, services.InstanceOptions{
		SSHDir:       e.SSHDir,
		PollInterval: time.Millisecond,
		PollTimeout:  e.pollTimeout,
	})
}

// FirewallService returns a firewall service wired to this environment
func (e *TestEnvironment) FirewallService() *services.FirewallService {
	return services.NewFirewallService(e.Client.Firewalls(), e.Printer)
}
