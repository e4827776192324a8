package test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/digitalocean/godo"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/boxalarm/dropletforge/internal/logger"
)

// FakeAPIToken is the only bearer token the fake API accepts
const FakeAPIToken = "fake-api-token"

// FakeAPI is an in-memory stand-in for the DigitalOcean endpoints used by
// dropletforge. Droplets start as "new" and turn "active" with a public
// address after BootPolls lookups.
type FakeAPI struct {
	App    *fiber.App
	Server *httptest.Server

	// BootPolls is how many GETs a new droplet answers with status "new"
	BootPolls int
	// PublicIP is attached to droplets once they are active
	PublicIP string
	// NextDropletID is the ID given to the next created droplet
	NextDropletID int

	mu        sync.Mutex
	nextKeyID int
	droplets  map[int]*fakeDroplet
	order     []int
	keys      []godo.KeyCreateRequest
	firewalls []godo.FirewallRequest
	deleted   []int
	actions   []string
}

type fakeDroplet struct {
	droplet godo.Droplet
	polls   int
}

// NewFakeAPI starts a fake API server; call Close when done
func NewFakeAPI() *FakeAPI {
	api := &FakeAPI{
		BootPolls:     0,
		PublicIP:      "203.0.113.9",
		NextDropletID: 42,
		nextKeyID:     512,
		droplets:      make(map[int]*fakeDroplet),
	}

	api.App = fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	api.App.Use(requestLogger())
	api.App.Use(authenticate)

	v2 := api.App.Group("/v2")
	v2.Post("/account/keys", api.createKey)
	v2.Get("/droplets", api.listDroplets)
	v2.Post("/droplets", api.createDroplet)
	v2.Get("/droplets/:id", api.getDroplet)
	v2.Delete("/droplets/:id", api.deleteDroplet)
	v2.Post("/droplets/:id/actions", api.dropletAction)
	v2.Post("/firewalls", api.createFirewall)

	api.Server = httptest.NewServer(adaptor.FiberApp(api.App))
	return api
}

// URL returns the base URL to hand to the godo client
func (a *FakeAPI) URL() string {
	return a.Server.URL + "/"
}

// Close stops the server
func (a *FakeAPI) Close() {
	a.Server.Close()
}

// AddDroplet seeds an existing droplet
func (a *FakeAPI) AddDroplet(d godo.Droplet) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.droplets[d.ID] = &fakeDroplet{droplet: d}
	a.order = append(a.order, d.ID)
}

// Keys returns the registered SSH key requests
func (a *FakeAPI) Keys() []godo.KeyCreateRequest {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]godo.KeyCreateRequest(nil), a.keys...)
}

// Firewalls returns the accepted firewall requests
func (a *FakeAPI) Firewalls() []godo.FirewallRequest {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]godo.FirewallRequest(nil), a.firewalls...)
}

// Deleted returns the IDs of destroyed droplets
func (a *FakeAPI) Deleted() []int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]int(nil), a.deleted...)
}

// Actions returns the droplet action types received, in order
func (a *FakeAPI) Actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.actions...)
}

// Polls returns how many times a droplet was fetched
func (a *FakeAPI) Polls(id int) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	if d, ok := a.droplets[id]; ok {
		return d.polls
	}
	return 0
}

func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger.DebugWithFields("fake api request", map[string]interface{}{
			"status":  c.Response().StatusCode(),
			"latency": time.Since(start),
			"method":  c.Method(),
			"path":    c.Path(),
		})
		return err
	}
}

func authenticate(c *fiber.Ctx) error {
	if c.Get(fiber.HeaderAuthorization) != "Bearer "+FakeAPIToken {
		return apiError(c, http.StatusUnauthorized, "unauthorized", "Unable to authenticate you")
	}
	return c.Next()
}

func apiError(c *fiber.Ctx, status int, id, message string) error {
	return c.Status(status).JSON(fiber.Map{"id": id, "message": message})
}

func (a *FakeAPI) createKey(c *fiber.Ctx) error {
	var req godo.KeyCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apiError(c, http.StatusBadRequest, "bad_request", err.Error())
	}
	if !strings.HasPrefix(req.PublicKey, "ssh-") {
		return apiError(c, http.StatusUnprocessableEntity, "unprocessable_entity", "Key invalid type")
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.nextKeyID++
	a.keys = append(a.keys, req)

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"ssh_key": godo.Key{ID: a.nextKeyID, Name: req.Name, PublicKey: req.PublicKey},
	})
}

// dropletCreateBody mirrors the wire form of godo.DropletCreateRequest,
// whose image and ssh_keys fields only marshal one way.
type dropletCreateBody struct {
	Name    string `json:"name"`
	Region  string `json:"region"`
	Size    string `json:"size"`
	Image   string `json:"image"`
	SSHKeys []int  `json:"ssh_keys"`
}

func (a *FakeAPI) createDroplet(c *fiber.Ctx) error {
	var req dropletCreateBody
	if err := c.BodyParser(&req); err != nil {
		return apiError(c, http.StatusBadRequest, "bad_request", err.Error())
	}
	if len(req.SSHKeys) == 0 {
		return apiError(c, http.StatusUnprocessableEntity, "unprocessable_entity", "ssh_keys is required")
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	for _, d := range a.droplets {
		if d.droplet.Name == req.Name {
			return apiError(c, http.StatusUnprocessableEntity, "unprocessable_entity", "Name is already in use")
		}
	}

	d := godo.Droplet{
		ID:       a.NextDropletID,
		Name:     req.Name,
		Status:   "new",
		Region:   &godo.Region{Slug: req.Region},
		Size:     &godo.Size{Slug: req.Size},
		SizeSlug: req.Size,
		Image:    &godo.Image{Slug: req.Image},
		Networks: &godo.Networks{},
	}
	a.NextDropletID++
	a.droplets[d.ID] = &fakeDroplet{droplet: d}
	a.order = append(a.order, d.ID)

	return c.Status(http.StatusAccepted).JSON(fiber.Map{"droplet": d})
}

func (a *FakeAPI) getDroplet(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apiError(c, http.StatusBadRequest, "bad_request", err.Error())
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	d, ok := a.droplets[id]
	if !ok {
		return apiError(c, http.StatusNotFound, "not_found", "The resource you were accessing could not be found.")
	}

	d.polls++
	if d.droplet.Status == "new" && d.polls > a.BootPolls {
		d.droplet.Status = "active"
		d.droplet.Networks = &godo.Networks{V4: []godo.NetworkV4{
			{Type: "private", IPAddress: "10.10.0.2"},
			{Type: "public", IPAddress: a.PublicIP},
		}}
	}
	return c.JSON(fiber.Map{"droplet": d.droplet})
}

func (a *FakeAPI) listDroplets(c *fiber.Ctx) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	droplets := make([]godo.Droplet, 0, len(a.order))
	for _, id := range a.order {
		if d, ok := a.droplets[id]; ok {
			droplets = append(droplets, d.droplet)
		}
	}
	return c.JSON(fiber.Map{
		"droplets": droplets,
		"links":    fiber.Map{},
		"meta":     fiber.Map{"total": len(droplets)},
	})
}

func (a *FakeAPI) deleteDroplet(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apiError(c, http.StatusBadRequest, "bad_request", err.Error())
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.droplets[id]; !ok {
		return apiError(c, http.StatusNotFound, "not_found", "The resource you were accessing could not be found.")
	}
	delete(a.droplets, id)
	a.deleted = append(a.deleted, id)
	return c.SendStatus(http.StatusNoContent)
}

func (a *FakeAPI) dropletAction(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apiError(c, http.StatusBadRequest, "bad_request", err.Error())
	}
	var req struct {
		Type string `json:"type"`
	}
	if err := c.BodyParser(&req); err != nil {
		return apiError(c, http.StatusBadRequest, "bad_request", err.Error())
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	d, ok := a.droplets[id]
	if !ok {
		return apiError(c, http.StatusNotFound, "not_found", "The resource you were accessing could not be found.")
	}

	switch req.Type {
	case "shutdown", "power_off":
		d.droplet.Status = "off"
	case "power_on":
		d.droplet.Status = "active"
	default:
		return apiError(c, http.StatusUnprocessableEntity, "unprocessable_entity", "unknown action type "+req.Type)
	}
	a.actions = append(a.actions, req.Type)

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"action": godo.Action{ID: len(a.actions), Type: req.Type, Status: "in-progress", ResourceID: id},
	})
}

func (a *FakeAPI) createFirewall(c *fiber.Ctx) error {
	var req godo.FirewallRequest
	if err := c.BodyParser(&req); err != nil {
		return apiError(c, http.StatusBadRequest, "bad_request", err.Error())
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	for _, fw := range a.firewalls {
		if fw.Name == req.Name {
			return apiError(c, http.StatusConflict, "conflict", "duplicate name")
		}
	}
	a.firewalls = append(a.firewalls, req)

	return c.Status(http.StatusAccepted).JSON(fiber.Map{
		"firewall": godo.Firewall{
			ID:            "fw-" + req.Name,
			Name:          req.Name,
			Status:        "waiting",
			InboundRules:  req.InboundRules,
			OutboundRules: req.OutboundRules,
			DropletIDs:    req.DropletIDs,
		},
	})
}
