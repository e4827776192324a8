package mocks

import (
	"context"
	"sync"

	"github.com/digitalocean/godo"

	"github.com/boxalarm/dropletforge/internal/types"
)

// MockDOClient implements types.DOClient for testing
type MockDOClient struct {
	MockDropletService       *MockDropletService
	MockDropletActionService *MockDropletActionService
	MockKeyService           *MockKeyService
	MockFirewallService      *MockFirewallService
	StandardResponses        *StandardResponses
}

// NewMockDOClient creates a new MockDOClient with standard responses
func NewMockDOClient() *MockDOClient {
	std := newStandardResponses()

	return &MockDOClient{
		StandardResponses:        std,
		MockDropletService:       NewMockDropletService(std),
		MockDropletActionService: NewMockDropletActionService(),
		MockKeyService:           NewMockKeyService(std),
		MockFirewallService:      NewMockFirewallService(),
	}
}

// Droplets returns the mock droplet service
func (c *MockDOClient) Droplets() types.DropletService {
	return c.MockDropletService
}

// DropletActions returns the mock droplet action service
func (c *MockDOClient) DropletActions() types.DropletActionService {
	return c.MockDropletActionService
}

// Keys returns the mock key service
func (c *MockDOClient) Keys() types.KeyService {
	return c.MockKeyService
}

// Firewalls returns the mock firewall service
func (c *MockDOClient) Firewalls() types.FirewallService {
	return c.MockFirewallService
}

// ResetToStandard resets all mock services back to their standard success responses
func (c *MockDOClient) ResetToStandard() {
	c.MockDropletService.ResetToStandard()
	c.MockDropletActionService.ResetToStandard()
	c.MockKeyService.ResetToStandard()
	c.MockFirewallService.ResetToStandard()
}

// SimulateAuthenticationFailure configures all services to return authentication errors
func (c *MockDOClient) SimulateAuthenticationFailure() {
	c.MockDropletService.SimulateError(ErrAuthentication)
	c.MockDropletActionService.SimulateError(ErrAuthentication)
	c.MockKeyService.SimulateError(ErrAuthentication)
	c.MockFirewallService.SimulateError(ErrAuthentication)
}

// MockDropletService implements types.DropletService for testing
type MockDropletService struct {
	std        *StandardResponses
	CreateFunc func(ctx context.Context, req *godo.DropletCreateRequest) (*godo.Droplet, *godo.Response, error)
	GetFunc    func(ctx context.Context, id int) (*godo.Droplet, *godo.Response, error)
	DeleteFunc func(ctx context.Context, id int) (*godo.Response, error)
	ListFunc   func(ctx context.Context, opt *godo.ListOptions) ([]godo.Droplet, *godo.Response, error)

	mu             sync.Mutex
	CreateRequests []*godo.DropletCreateRequest
	GetCalls       int
	DeleteCalls    []int
	ListCalls      int
}

// NewMockDropletService creates a new MockDropletService with standard responses
func NewMockDropletService(std *StandardResponses) *MockDropletService {
	s := &MockDropletService{std: std}
	s.ResetToStandard()
	return s
}

// ResetToStandard resets the droplet service back to standard success responses
func (s *MockDropletService) ResetToStandard() {
	s.CreateFunc = func(_ context.Context, req *godo.DropletCreateRequest) (*godo.Droplet, *godo.Response, error) {
		droplet := NewDroplet(s.std.Droplets.DefaultDroplet.ID, req.Name, string(types.InstanceStatusNew), "")
		droplet.Networks = &godo.Networks{}
		droplet.Region.Slug = req.Region
		droplet.Size.Slug = req.Size
		return droplet, nil, nil
	}
	s.GetFunc = func(_ context.Context, _ int) (*godo.Droplet, *godo.Response, error) {
		return s.std.Droplets.DefaultDroplet, nil, nil
	}
	s.DeleteFunc = func(_ context.Context, _ int) (*godo.Response, error) {
		return nil, nil
	}
	s.ListFunc = func(_ context.Context, _ *godo.ListOptions) ([]godo.Droplet, *godo.Response, error) {
		return s.std.Droplets.DefaultDropletList, &godo.Response{}, nil
	}
}

// QueueGet makes successive Get calls return the given droplets in order;
// once exhausted the last droplet keeps being returned.
func (s *MockDropletService) QueueGet(droplets ...*godo.Droplet) {
	var next int
	s.GetFunc = func(_ context.Context, _ int) (*godo.Droplet, *godo.Response, error) {
		d := droplets[next]
		if next < len(droplets)-1 {
			next++
		}
		return d, nil, nil
	}
}

// SimulateError makes every droplet call fail with err
func (s *MockDropletService) SimulateError(err error) {
	s.CreateFunc = func(_ context.Context, _ *godo.DropletCreateRequest) (*godo.Droplet, *godo.Response, error) {
		return nil, nil, err
	}
	s.GetFunc = func(_ context.Context, _ int) (*godo.Droplet, *godo.Response, error) {
		return nil, nil, err
	}
	s.DeleteFunc = func(_ context.Context, _ int) (*godo.Response, error) {
		return nil, err
	}
	s.ListFunc = func(_ context.Context, _ *godo.ListOptions) ([]godo.Droplet, *godo.Response, error) {
		return nil, nil, err
	}
}

// SimulateNotFound configures lookups and deletes to return not found errors
func (s *MockDropletService) SimulateNotFound() {
	s.GetFunc = func(_ context.Context, _ int) (*godo.Droplet, *godo.Response, error) {
		return nil, nil, ErrDropletNotFound
	}
	s.DeleteFunc = func(_ context.Context, _ int) (*godo.Response, error) {
		return nil, ErrDropletNotFound
	}
}

// Create calls the mocked Create function
func (s *MockDropletService) Create(ctx context.Context, req *godo.DropletCreateRequest) (*godo.Droplet, *godo.Response, error) {
	s.mu.Lock()
	s.CreateRequests = append(s.CreateRequests, req)
	s.mu.Unlock()
	return s.CreateFunc(ctx, req)
}

// Get calls the mocked Get function
func (s *MockDropletService) Get(ctx context.Context, id int) (*godo.Droplet, *godo.Response, error) {
	s.mu.Lock()
	s.GetCalls++
	s.mu.Unlock()
	return s.GetFunc(ctx, id)
}

// Delete calls the mocked Delete function
func (s *MockDropletService) Delete(ctx context.Context, id int) (*godo.Response, error) {
	s.mu.Lock()
	s.DeleteCalls = append(s.DeleteCalls, id)
	s.mu.Unlock()
	return s.DeleteFunc(ctx, id)
}

// List calls the mocked List function
func (s *MockDropletService) List(ctx context.Context, opt *godo.ListOptions) ([]godo.Droplet, *godo.Response, error) {
	s.mu.Lock()
	s.ListCalls++
	s.mu.Unlock()
	return s.ListFunc(ctx, opt)
}

// MockDropletActionService implements types.DropletActionService for testing
type MockDropletActionService struct {
	PowerOnFunc  func(ctx context.Context, id int) (*godo.Action, *godo.Response, error)
	ShutdownFunc func(ctx context.Context, id int) (*godo.Action, *godo.Response, error)

	mu            sync.Mutex
	PowerOnCalls  []int
	ShutdownCalls []int
}

// NewMockDropletActionService creates a new MockDropletActionService with standard responses
func NewMockDropletActionService() *MockDropletActionService {
	s := &MockDropletActionService{}
	s.ResetToStandard()
	return s
}

// ResetToStandard resets the action service back to standard success responses
func (s *MockDropletActionService) ResetToStandard() {
	s.PowerOnFunc = func(_ context.Context, id int) (*godo.Action, *godo.Response, error) {
		return &godo.Action{ID: DefaultActionID, Type: "power_on", Status: "in-progress", ResourceID: id}, nil, nil
	}
	s.ShutdownFunc = func(_ context.Context, id int) (*godo.Action, *godo.Response, error) {
		return &godo.Action{ID: DefaultActionID, Type: "shutdown", Status: "in-progress", ResourceID: id}, nil, nil
	}
}

// SimulateError makes every action call fail with err
func (s *MockDropletActionService) SimulateError(err error) {
	s.PowerOnFunc = func(_ context.Context, _ int) (*godo.Action, *godo.Response, error) {
		return nil, nil, err
	}
	s.ShutdownFunc = func(_ context.Context, _ int) (*godo.Action, *godo.Response, error) {
		return nil, nil, err
	}
}

// PowerOn calls the mocked PowerOn function
func (s *MockDropletActionService) PowerOn(ctx context.Context, id int) (*godo.Action, *godo.Response, error) {
	s.mu.Lock()
	s.PowerOnCalls = append(s.PowerOnCalls, id)
	s.mu.Unlock()
	return s.PowerOnFunc(ctx, id)
}

// Shutdown calls the mocked Shutdown function
func (s *MockDropletActionService) Shutdown(ctx context.Context, id int) (*godo.Action, *godo.Response, error) {
	s.mu.Lock()
	s.ShutdownCalls = append(s.ShutdownCalls, id)
	s.mu.Unlock()
	return s.ShutdownFunc(ctx, id)
}

// MockKeyService implements types.KeyService for testing
type MockKeyService struct {
	std        *StandardResponses
	CreateFunc func(ctx context.Context, req *godo.KeyCreateRequest) (*godo.Key, *godo.Response, error)

	mu             sync.Mutex
	CreateRequests []*godo.KeyCreateRequest
}

// NewMockKeyService creates a new MockKeyService with standard responses
func NewMockKeyService(std *StandardResponses) *MockKeyService {
	s := &MockKeyService{std: std}
	s.ResetToStandard()
	return s
}

// ResetToStandard resets the key service back to standard success responses
func (s *MockKeyService) ResetToStandard() {
	s.CreateFunc = func(_ context.Context, req *godo.KeyCreateRequest) (*godo.Key, *godo.Response, error) {
		key := *s.std.Keys.DefaultKey
		key.Name = req.Name
		key.PublicKey = req.PublicKey
		return &key, nil, nil
	}
}

// SimulateError makes every key call fail with err
func (s *MockKeyService) SimulateError(err error) {
	s.CreateFunc = func(_ context.Context, _ *godo.KeyCreateRequest) (*godo.Key, *godo.Response, error) {
		return nil, nil, err
	}
}

// Create calls the mocked Create function
func (s *MockKeyService) Create(ctx context.Context, req *godo.KeyCreateRequest) (*godo.Key, *godo.Response, error) {
	s.mu.Lock()
	s.CreateRequests = append(s.CreateRequests, req)
	s.mu.Unlock()
	return s.CreateFunc(ctx, req)
}

// MockFirewallService implements types.FirewallService for testing
type MockFirewallService struct {
	CreateFunc func(ctx context.Context, req *godo.FirewallRequest) (*godo.Firewall, *godo.Response, error)

	mu             sync.Mutex
	CreateRequests []*godo.FirewallRequest
}

// NewMockFirewallService creates a new MockFirewallService with standard responses
func NewMockFirewallService() *MockFirewallService {
	s := &MockFirewallService{}
	s.ResetToStandard()
	return s
}

// ResetToStandard resets the firewall service back to standard success responses
func (s *MockFirewallService) ResetToStandard() {
	s.CreateFunc = func(_ context.Context, req *godo.FirewallRequest) (*godo.Firewall, *godo.Response, error) {
		return &godo.Firewall{
			ID:            DefaultFirewallID,
			Name:          req.Name,
			Status:        "waiting",
			InboundRules:  req.InboundRules,
			OutboundRules: req.OutboundRules,
			DropletIDs:    req.DropletIDs,
		}, nil, nil
	}
}

// SimulateDuplicateName makes Create fail as if the firewall name were taken
func (s *MockFirewallService) SimulateDuplicateName() {
	s.SimulateError(ErrDuplicateName)
}

// SimulateError makes every firewall call fail with err
func (s *MockFirewallService) SimulateError(err error) {
	s.CreateFunc = func(_ context.Context, _ *godo.FirewallRequest) (*godo.Firewall, *godo.Response, error) {
		return nil, nil, err
	}
}

// Create calls the mocked Create function
func (s *MockFirewallService) Create(ctx context.Context, req *godo.FirewallRequest) (*godo.Firewall, *godo.Response, error) {
	s.mu.Lock()
	s.CreateRequests = append(s.CreateRequests, req)
	s.mu.Unlock()
	return s.CreateFunc(ctx, req)
}
