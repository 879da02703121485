package ec2

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsec2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ec2ctl-io/ec2ctl/internal/term"
)

// fakeAPI scripts EC2 API responses and records request parameters.
type fakeAPI struct {
	describeIn  []*awsec2.DescribeInstancesInput
	describeOut *awsec2.DescribeInstancesOutput
	describeErr error

	stopIn  []*awsec2.StopInstancesInput
	stopOut *awsec2.StopInstancesOutput
	stopErr error

	startIn  []*awsec2.StartInstancesInput
	startOut *awsec2.StartInstancesOutput
	startErr error
}

func (f *fakeAPI) DescribeInstances(ctx context.Context, params *awsec2.DescribeInstancesInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeInstancesOutput, error) {
	f.describeIn = append(f.describeIn, params)
	return f.describeOut, f.describeErr
}

func (f *fakeAPI) StopInstances(ctx context.Context, params *awsec2.StopInstancesInput, optFns ...func(*awsec2.Options)) (*awsec2.StopInstancesOutput, error) {
	f.stopIn = append(f.stopIn, params)
	return f.stopOut, f.stopErr
}

func (f *fakeAPI) StartInstances(ctx context.Context, params *awsec2.StartInstancesInput, optFns ...func(*awsec2.Options)) (*awsec2.StartInstancesOutput, error) {
	f.startIn = append(f.startIn, params)
	return f.startOut, f.startErr
}

func newTestSDK(api *fakeAPI, input string) *SDK {
	return &SDK{
		API:  api,
		In:   strings.NewReader(input),
		Diag: &bytes.Buffer{},
		Log:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func reservationsOf(instances ...types.Instance) *awsec2.DescribeInstancesOutput {
	return &awsec2.DescribeInstancesOutput{
		Reservations: []types.Reservation{{Instances: instances}},
	}
}

func TestSDK_ByName(t *testing.T) {
	api := &fakeAPI{describeOut: reservationsOf(types.Instance{
		InstanceId: aws.String("i-0abc"),
		State:      &types.InstanceState{Name: types.InstanceStateNameRunning},
	})}
	svc := newTestSDK(api, "")

	inst, err := svc.ByName(context.Background(), "web-1")
	require.NoError(t, err)

	assert.Equal(t, "i-0abc", inst.ID())
	assert.True(t, inst.Running())

	require.Len(t, api.describeIn, 1)
	require.Len(t, api.describeIn[0].Filters, 1)
	filter := api.describeIn[0].Filters[0]
	assert.Equal(t, "tag:Name", *filter.Name)
	assert.Equal(t, []string{"web-1"}, filter.Values)
}

func TestSDK_ByID(t *testing.T) {
	api := &fakeAPI{describeOut: reservationsOf(types.Instance{
		InstanceId: aws.String("i-0abc"),
		State:      &types.InstanceState{Name: types.InstanceStateNameStopped},
	})}
	svc := newTestSDK(api, "")

	inst, err := svc.ByID(context.Background(), "i-0abc")
	require.NoError(t, err)
	assert.True(t, inst.Stopped())

	require.Len(t, api.describeIn, 1)
	filter := api.describeIn[0].Filters[0]
	assert.Equal(t, "instance-id", *filter.Name)
	assert.Equal(t, []string{"i-0abc"}, filter.Values)
	// Filtering by instance-id keeps a miss an empty result instead of an
	// API error, matching the command line backend.
	assert.Empty(t, api.describeIn[0].InstanceIds)
}

func TestSDK_BlankArguments(t *testing.T) {
	api := &fakeAPI{}
	svc := newTestSDK(api, "")

	_, err := svc.ByName(context.Background(), "   ")
	var argErr *ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "name", argErr.Name)

	_, err = svc.ByID(context.Background(), "")
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "instance id", argErr.Name)

	assert.Empty(t, api.describeIn)
}

func TestSDK_LookupEmpty(t *testing.T) {
	api := &fakeAPI{describeOut: &awsec2.DescribeInstancesOutput{}}
	svc := newTestSDK(api, "")

	_, err := svc.ByName(context.Background(), "nothing-here")
	assert.ErrorIs(t, err, ErrEmptyResult)
}

func TestSDK_LookupAmbiguous(t *testing.T) {
	api := &fakeAPI{describeOut: &awsec2.DescribeInstancesOutput{
		Reservations: []types.Reservation{
			{Instances: []types.Instance{{InstanceId: aws.String("i-0abc")}}},
			{Instances: []types.Instance{{InstanceId: aws.String("i-0def")}}},
		},
	}}
	svc := newTestSDK(api, "")

	_, err := svc.ByName(context.Background(), "web")

	var ambiguous *AmbiguousResultError
	require.ErrorAs(t, err, &ambiguous)
	assert.Len(t, ambiguous.Matches, 2)
}

func TestSDK_LookupAPIError(t *testing.T) {
	api := &fakeAPI{describeErr: &smithy.GenericAPIError{
		Code:    "UnauthorizedOperation",
		Message: "not allowed",
	}}
	svc := newTestSDK(api, "")

	_, err := svc.ByID(context.Background(), "i-0abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UnauthorizedOperation")
	assert.Contains(t, err.Error(), "not allowed")
}

func TestSDK_StopDeclined(t *testing.T) {
	api := &fakeAPI{stopOut: &awsec2.StopInstancesOutput{}}
	svc := newTestSDK(api, "n\n")

	_, err := svc.Stop(context.Background(), "i-0abc", true)

	assert.ErrorIs(t, err, term.ErrDeclined)
	// Declining aborts before the API is touched.
	assert.Empty(t, api.stopIn)
}

func TestSDK_StopApproved(t *testing.T) {
	api := &fakeAPI{stopOut: &awsec2.StopInstancesOutput{
		StoppingInstances: []types.InstanceStateChange{{InstanceId: aws.String("i-0abc")}},
	}}
	svc := newTestSDK(api, "y\n")

	out, err := svc.Stop(context.Background(), "i-0abc", true)
	require.NoError(t, err)
	assert.Contains(t, out, "i-0abc")

	require.Len(t, api.stopIn, 1)
	assert.Equal(t, []string{"i-0abc"}, api.stopIn[0].InstanceIds)
	assert.True(t, *api.stopIn[0].Force)

	prompt := svc.Diag.(*bytes.Buffer).String()
	assert.Contains(t, prompt, "i-0abc")
}

func TestSDK_StopAutoApprove(t *testing.T) {
	api := &fakeAPI{stopOut: &awsec2.StopInstancesOutput{}}
	svc := newTestSDK(api, "")
	svc.AutoApprove = true

	_, err := svc.Stop(context.Background(), "i-0abc", false)
	require.NoError(t, err)

	require.Len(t, api.stopIn, 1)
	assert.False(t, *api.stopIn[0].Force)
}

func TestSDK_StartNeverPrompts(t *testing.T) {
	api := &fakeAPI{startOut: &awsec2.StartInstancesOutput{
		StartingInstances: []types.InstanceStateChange{{InstanceId: aws.String("i-0abc")}},
	}}
	// An empty input stream would decline any prompt, so reaching the API
	// proves no prompt was issued.
	svc := newTestSDK(api, "")

	out, err := svc.Start(context.Background(), "i-0abc")
	require.NoError(t, err)
	assert.Contains(t, out, "i-0abc")

	require.Len(t, api.startIn, 1)
	assert.Equal(t, []string{"i-0abc"}, api.startIn[0].InstanceIds)
}

func TestSDK_Reload(t *testing.T) {
	api := &fakeAPI{describeOut: reservationsOf(types.Instance{
		InstanceId: aws.String("i-0abc"),
		State:      &types.InstanceState{Name: types.InstanceStateNameStopping},
	})}
	svc := newTestSDK(api, "")

	inst, err := svc.ByID(context.Background(), "i-0abc")
	require.NoError(t, err)

	fresh, err := svc.Reload(context.Background(), inst)
	require.NoError(t, err)
	assert.Equal(t, "i-0abc", fresh.ID())
	assert.True(t, fresh.Stopping())

	require.Len(t, api.describeIn, 2)
	assert.Equal(t, "instance-id", *api.describeIn[1].Filters[0].Name)
}
