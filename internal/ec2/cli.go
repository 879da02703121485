package ec2

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// CommandRunner executes one AWS CLI invocation and returns its stdout.
// Implemented by *awscli.Runner.
type CommandRunner interface {
	Run(ctx context.Context, args []string, confirm, logOutput bool) (string, error)
}

// CLI is a Service backed by the AWS command line tool.
type CLI struct {
	runner CommandRunner
}

var _ Service = (*CLI)(nil)

// NewCLI returns a Service that shells out through r.
func NewCLI(r CommandRunner) *CLI {
	return &CLI{runner: r}
}

func (c *CLI) ByName(ctx context.Context, name string) (*Instance, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ArgumentError{Name: "name"}
	}
	return c.lookup(ctx, "tag:Name", name)
}

func (c *CLI) ByID(ctx context.Context, id string) (*Instance, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, &ArgumentError{Name: "instance id"}
	}
	return c.lookup(ctx, "instance-id", id)
}

func (c *CLI) Reload(ctx context.Context, inst *Instance) (*Instance, error) {
	return c.ByID(ctx, inst.ID())
}

// lookup runs describe-instances with a single filter and resolves the
// result down to exactly one instance.
func (c *CLI) lookup(ctx context.Context, key, value string) (*Instance, error) {
	out, err := c.runner.Run(ctx, []string{
		"ec2", "describe-instances",
		"--filters", fmt.Sprintf("Name=%s,Values=%s", key, value),
	}, false, false)
	if err != nil {
		return nil, err
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		return nil, fmt.Errorf("parse describe-instances output: %w", err)
	}
	candidates, err := flattenReservations(payload)
	if err != nil {
		return nil, err
	}
	match, err := singular(candidates)
	if err != nil {
		return nil, err
	}
	desc, ok := match.(map[string]any)
	if !ok {
		return nil, &UnexpectedResultError{Value: match}
	}
	return NewInstance(desc, c), nil
}

// flattenReservations collects the instances of every reservation group in
// a describe-instances payload into one candidate list.
func flattenReservations(payload map[string]any) ([]any, error) {
	groups, ok := payload["Reservations"].([]any)
	if !ok {
		return nil, &UnexpectedResultError{Value: payload["Reservations"]}
	}
	var instances []any
	for _, g := range groups {
		group, ok := g.(map[string]any)
		if !ok {
			return nil, &UnexpectedResultError{Value: g}
		}
		list, ok := group["Instances"].([]any)
		if !ok {
			return nil, &UnexpectedResultError{Value: group["Instances"]}
		}
		instances = append(instances, list...)
	}
	return instances, nil
}

func (c *CLI) Stop(ctx context.Context, id string, force bool) (string, error) {
	args := []string{"ec2", "stop-instances"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, "--instance-ids", id)
	return c.runner.Run(ctx, args, true, true)
}

func (c *CLI) Start(ctx context.Context, id string) (string, error) {
	return c.runner.Run(ctx, []string{"ec2", "start-instances", "--instance-ids", id}, false, true)
}
