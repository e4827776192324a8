package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/boxalarm/dropletforge/internal/compute"
	"github.com/boxalarm/dropletforge/internal/config"
	"github.com/boxalarm/dropletforge/internal/logger"
	"github.com/boxalarm/dropletforge/internal/prompt"
	"github.com/boxalarm/dropletforge/internal/services"
	"github.com/boxalarm/dropletforge/internal/types"
	"github.com/boxalarm/dropletforge/internal/ui"
)

// flag names
const (
	flagList    = "list"
	flagCreate  = "create"
	flagName    = "name"
	flagAllowIP = "allow-ip"
	flagNoFW    = "no-fw"
	flagDestroy = "destroy"
	flagRegion  = "region"
	flagSize    = "size"
	flagImage   = "image"
	flagOff     = "off"
	flagOn      = "on"
	flagSSH     = "ssh"
	flagYes     = "yes"
	flagTimeout = "timeout"
	flagConfig  = "config"
	flagDebug   = "debug"
)

// ClientFactory builds the DigitalOcean client once the token is known
type ClientFactory func(ctx context.Context, token string) (types.DOClient, error)

// DefaultClientFactory connects to the public DigitalOcean API
func DefaultClientFactory(ctx context.Context, token string) (types.DOClient, error) {
	client, err := compute.NewDigitalOceanClient(ctx, token)
	if err != nil {
		return nil, err
	}
	return client, nil
}

type options struct {
	list       bool
	create     bool
	name       string
	allowIP    string
	noFW       bool
	destroy    int
	region     string
	size       string
	image      string
	off        int
	on         int
	ssh        int
	yes        bool
	configPath string
	debug      bool
}

// runner carries everything one invocation needs
type runner struct {
	opts     *options
	cfg      *config.Config
	client   types.DOClient
	prompter prompt.Prompter
	printer  *ui.Printer
}

// NewRootCmd creates the dropletforge command. newClient and prompter are
// injected so tests can run it against mocks.
func NewRootCmd(newClient ClientFactory, prompter prompt.Prompter) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "dropletforge",
		Short: "DropletForge - Instantly deploy and manage secure droplets",
		Long: `DropletForge creates DigitalOcean droplets with a fresh SSH key and a firewall
that only lets your IP in, and manages them afterwards.

The API token is read from DIGITALOCEAN_TOKEN (or DO_API_KEY).`,
		Example: `  dropletforge --create --name test-server
  dropletforge -c -n test-server --allow-ip 203.0.113.42
  dropletforge --list
  dropletforge --destroy 123456789
  dropletforge --on 123456789
  dropletforge --off 123456789`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := ui.NewPrinter(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout(), printer.Accent(banner))

			if opts.debug {
				logger.SetLevel(logrus.DebugLevel)
			}

			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			if isCreate(cmd, opts) && opts.name == "" {
				return fmt.Errorf("--%s requires --%s to be specified", flagCreate, flagName)
			}

			client, err := newClient(cmd.Context(), cfg.Token)
			if err != nil {
				return err
			}

			r := &runner{
				opts:     opts,
				cfg:      cfg,
				client:   client,
				prompter: prompter,
				printer:  printer,
			}
			return r.run(cmd)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&opts.list, flagList, "l", false, "List all droplets with their ID, Name, Status and Public IP")
	flags.BoolVarP(&opts.create, flagCreate, "c", false, "Create a new droplet")
	flags.StringVarP(&opts.name, flagName, "n", "", "Name of the droplet (required with --create)")
	flags.StringVar(&opts.allowIP, flagAllowIP, "", "IP or CIDR allowed to SSH in (default: auto-detect your current public IP)")
	flags.BoolVar(&opts.noFW, flagNoFW, false, "Skip firewall creation (not recommended)")
	flags.IntVarP(&opts.destroy, flagDestroy, "d", 0, "Permanently destroy a droplet (find its ID with --list)")
	flags.StringVar(&opts.region, flagRegion, config.DefaultRegion, "Region")
	flags.StringVar(&opts.size, flagSize, config.DefaultSize, "Droplet size")
	flags.StringVar(&opts.image, flagImage, config.DefaultImage, "Image")
	flags.IntVar(&opts.off, flagOff, 0, "Shut down a droplet")
	flags.IntVar(&opts.on, flagOn, 0, "Power on a droplet")
	flags.IntVar(&opts.ssh, flagSSH, 0, "Print the SSH command for a droplet")
	flags.BoolVarP(&opts.yes, flagYes, "y", false, "Do not ask for confirmation before destroying")
	flags.Duration(flagTimeout, config.DefaultPollTimeout, "How long to wait for a droplet to change state")
	flags.StringVar(&opts.configPath, flagConfig, config.DefaultPath(), "Path to the YAML config file")
	flags.BoolVar(&opts.debug, flagDebug, false, "Enable debug logging")

	cmd.MarkFlagsMutuallyExclusive(flagList, flagCreate, flagDestroy, flagOff, flagOn, flagSSH)
	cmd.MarkFlagsMutuallyExclusive(flagAllowIP, flagNoFW)

	return cmd
}

// loadConfig merges the config file and environment with any flags the
// operator set explicitly.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed(flagRegion) {
		cfg.Region = opts.region
	}
	if flags.Changed(flagSize) {
		cfg.Size = opts.size
	}
	if flags.Changed(flagImage) {
		cfg.Image = opts.image
	}
	if flags.Changed(flagTimeout) {
		if cfg.PollTimeout, err = flags.GetDuration(flagTimeout); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// isCreate reports whether create is the selected action, which is also the
// default when no other action flag is given.
func isCreate(cmd *cobra.Command, opts *options) bool {
	if opts.create {
		return true
	}
	for _, f := range []string{flagList, flagDestroy, flagOff, flagOn, flagSSH} {
		if cmd.Flags().Changed(f) {
			return false
		}
	}
	return true
}

func (r *runner) run(cmd *cobra.Command) error {
	ctx := cmd.Context()
	flags := cmd.Flags()

	svc := services.NewInstanceService(r.client, r.prompter, r.printer, services.InstanceOptions{
		SSHDir:       r.cfg.SSHDir,
		PollInterval: r.cfg.PollInterval,
		PollTimeout:  r.cfg.PollTimeout,
	})

	switch {
	case flags.Changed(flagList):
		return r.list(ctx, svc)
	case flags.Changed(flagDestroy):
		return r.destroy(ctx, svc)
	case flags.Changed(flagOff):
		return svc.PowerOff(ctx, r.opts.off)
	case flags.Changed(flagOn):
		return svc.PowerOn(ctx, r.opts.on)
	case flags.Changed(flagSSH):
		sshCmd, err := svc.SSHCommand(ctx, r.opts.ssh)
		if err != nil {
			return err
		}
		r.printer.SSHCommand(sshCmd)
		return nil
	default:
		return r.create(ctx, svc)
	}
}

func (r *runner) list(ctx context.Context, svc *services.Instance) error {
	summaries, err := svc.List(ctx)
	if err != nil {
		return err
	}
	r.printer.InstanceTable(summaries)
	return nil
}

func (r *runner) destroy(ctx context.Context, svc *services.Instance) error {
	err := svc.Destroy(ctx, r.opts.destroy, services.DestroyOptions{Confirmed: r.opts.yes})
	if errors.Is(err, services.ErrAborted) {
		r.printer.Newline()
		r.printer.Warn("Aborted.")
		return nil
	}
	return err
}

func (r *runner) create(ctx context.Context, svc *services.Instance) error {
	result, err := svc.Create(ctx, services.CreateRequest{
		Name:   r.opts.name,
		Region: r.cfg.Region,
		Size:   r.cfg.Size,
		Image:  r.cfg.Image,
	})
	if err != nil {
		r.printer.Error("[-] Droplet creation failed - aborting")
		return err
	}

	if r.opts.noFW {
		r.printer.Error(" [-] WARNING: your droplet is not behind a firewall because you used '--%s'", flagNoFW)
	} else {
		resolver := services.NewIPResolver(r.cfg.IPServices, r.cfg.IPLookupTimeout, r.prompter, r.printer)
		allowedIP, err := resolver.Resolve(ctx, r.opts.allowIP)
		if err != nil {
			return err
		}

		firewalls := services.NewFirewallService(r.client.Firewalls(), r.printer)
		if _, err := firewalls.Provision(ctx, result.ID, r.opts.name, allowedIP); err != nil {
			return err
		}
	}

	r.printer.SSHCommand(services.SSHCommandFor(r.cfg.SSHDir, r.opts.name, result.PublicIP))
	return nil
}
