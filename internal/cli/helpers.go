package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ec2ctl-io/ec2ctl/internal/awscli"
	"github.com/ec2ctl-io/ec2ctl/internal/config"
	"github.com/ec2ctl-io/ec2ctl/internal/ec2"
)

// newService builds the configured instance service.
func newService(ctx context.Context) (ec2.Service, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	switch cfg.Backend {
	case "", config.BackendCLI:
		runner := &awscli.Runner{
			Path:        cfg.CLIPath,
			BaseArgs:    baseArgs(cfg),
			Log:         logger,
			AutoApprove: cfg.AutoApprove,
		}
		return ec2.NewCLI(runner), cfg, nil
	case config.BackendSDK:
		svc, err := ec2.NewSDK(ctx, cfg.Region, cfg.Profile)
		if err != nil {
			return nil, nil, err
		}
		svc.Log = logger
		svc.AutoApprove = cfg.AutoApprove
		return svc, cfg, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q (want %s or %s)", cfg.Backend, config.BackendCLI, config.BackendSDK)
	}
}

// baseArgs renders the configured AWS context as command line arguments.
func baseArgs(cfg *config.Config) []string {
	var args []string
	if cfg.Region != "" {
		args = append(args, "--region", cfg.Region)
	}
	if cfg.Profile != "" {
		args = append(args, "--profile", cfg.Profile)
	}
	return args
}

// renderJSON pretty-prints v to w as indented JSON.
func renderJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
