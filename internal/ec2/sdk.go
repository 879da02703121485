package ec2

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsec2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/smithy-go"

	"github.com/ec2ctl-io/ec2ctl/internal/term"
)

// InstanceAPI is the slice of the EC2 API the SDK service needs.
// Satisfied by *ec2.Client from the AWS SDK.
type InstanceAPI interface {
	DescribeInstances(ctx context.Context, params *awsec2.DescribeInstancesInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeInstancesOutput, error)
	StopInstances(ctx context.Context, params *awsec2.StopInstancesInput, optFns ...func(*awsec2.Options)) (*awsec2.StopInstancesOutput, error)
	StartInstances(ctx context.Context, params *awsec2.StartInstancesInput, optFns ...func(*awsec2.Options)) (*awsec2.StartInstancesOutput, error)
}

// SDK is a Service that talks to the provider through the AWS SDK instead
// of shelling out. Lookups go through the same filter expressions as the
// command line tool, so a miss is an empty result rather than an API error.
type SDK struct {
	// API is the EC2 client.
	API InstanceAPI
	// In and Diag are the confirmation console pair. Nil means stdin and
	// stderr.
	In   io.Reader
	Diag io.Writer
	// Log receives progress and command responses. Nil means the default
	// logger.
	Log *slog.Logger
	// AutoApprove skips the interactive stop confirmation.
	AutoApprove bool
}

var _ Service = (*SDK)(nil)

// NewSDK builds an SDK service from the ambient AWS configuration,
// narrowed by region and profile when they are non-empty.
func NewSDK(ctx context.Context, region, profile string) (*SDK, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	if profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(profile))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return &SDK{API: awsec2.NewFromConfig(cfg)}, nil
}

func (s *SDK) ByName(ctx context.Context, name string) (*Instance, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ArgumentError{Name: "name"}
	}
	return s.lookup(ctx, "tag:Name", name)
}

func (s *SDK) ByID(ctx context.Context, id string) (*Instance, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, &ArgumentError{Name: "instance id"}
	}
	return s.lookup(ctx, "instance-id", id)
}

func (s *SDK) Reload(ctx context.Context, inst *Instance) (*Instance, error) {
	return s.ByID(ctx, inst.ID())
}

func (s *SDK) lookup(ctx context.Context, key, value string) (*Instance, error) {
	resp, err := s.API.DescribeInstances(ctx, &awsec2.DescribeInstancesInput{
		Filters: []types.Filter{
			{Name: aws.String(key), Values: []string{value}},
		},
	})
	if err != nil {
		return nil, apiError("describe instances", err)
	}

	var candidates []any
	for _, res := range resp.Reservations {
		for _, inst := range res.Instances {
			desc, err := describeMap(inst)
			if err != nil {
				return nil, err
			}
			candidates = append(candidates, desc)
		}
	}
	match, err := singular(candidates)
	if err != nil {
		return nil, err
	}
	return NewInstance(match.(map[string]any), s), nil
}

// describeMap renders an SDK instance into the payload shape the command
// line tool emits: a map keyed by the provider's JSON field names.
func describeMap(inst types.Instance) (map[string]any, error) {
	raw, err := json.Marshal(inst)
	if err != nil {
		return nil, fmt.Errorf("encode instance description: %w", err)
	}
	var desc map[string]any
	if err := json.Unmarshal(raw, &desc); err != nil {
		return nil, fmt.Errorf("decode instance description: %w", err)
	}
	return desc, nil
}

func (s *SDK) Stop(ctx context.Context, id string, force bool) (string, error) {
	if !s.AutoApprove {
		action := fmt.Sprintf("stop instance %s (force=%t)", id, force)
		if err := term.Confirm(s.in(), s.diag(), action); err != nil {
			return "", err
		}
	}
	resp, err := s.API.StopInstances(ctx, &awsec2.StopInstancesInput{
		InstanceIds: []string{id},
		Force:       aws.Bool(force),
	})
	if err != nil {
		return "", apiError("stop instances", err)
	}
	return s.render(resp)
}

func (s *SDK) Start(ctx context.Context, id string) (string, error) {
	resp, err := s.API.StartInstances(ctx, &awsec2.StartInstancesInput{
		InstanceIds: []string{id},
	})
	if err != nil {
		return "", apiError("start instances", err)
	}
	return s.render(resp)
}

// render encodes an API response as indented JSON and logs it, mirroring
// the output echo of the command line backend.
func (s *SDK) render(resp any) (string, error) {
	raw, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode response: %w", err)
	}
	s.log().Info("command output", "output", string(raw))
	return string(raw), nil
}

func (s *SDK) in() io.Reader {
	if s.In != nil {
		return s.In
	}
	return os.Stdin
}

func (s *SDK) diag() io.Writer {
	if s.Diag != nil {
		return s.Diag
	}
	return os.Stderr
}

func (s *SDK) log() *slog.Logger {
	if s.Log != nil {
		return s.Log
	}
	return slog.Default()
}

// apiError folds the provider's error code into the message when the
// failure is an API error.
func apiError(op string, err error) error {
	var ae smithy.APIError
	if errors.As(err, &ae) {
		return fmt.Errorf("%s: %s: %s", op, ae.ErrorCode(), ae.ErrorMessage())
	}
	return fmt.Errorf("%s: %w", op, err)
}
