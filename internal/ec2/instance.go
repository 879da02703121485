package ec2

import "context"

// Instance is a read-only view over one instance description. State is
// whatever the provider reported when the descriptor was built; a fresh
// view comes from Service.Reload, never from mutating this one.
type Instance struct {
	desc map[string]any
	svc  Service
}

// NewInstance wraps a raw instance description. The payload uses the
// provider's JSON field names ("InstanceId", "State" and so on).
func NewInstance(desc map[string]any, svc Service) *Instance {
	return &Instance{desc: desc, svc: svc}
}

// ID returns the instance id, or "" when the payload lacks one.
func (i *Instance) ID() string {
	id, _ := i.desc["InstanceId"].(string)
	return id
}

// State returns the lifecycle state name, or "" when the payload lacks one.
func (i *Instance) State() InstanceState {
	state, _ := i.desc["State"].(map[string]any)
	name, _ := state["Name"].(string)
	return InstanceState(name)
}

func (i *Instance) Pending() bool      { return i.State() == StatePending }
func (i *Instance) Running() bool      { return i.State() == StateRunning }
func (i *Instance) ShuttingDown() bool { return i.State() == StateShuttingDown }
func (i *Instance) Terminated() bool   { return i.State() == StateTerminated }
func (i *Instance) Stopping() bool     { return i.State() == StateStopping }
func (i *Instance) Stopped() bool      { return i.State() == StateStopped }

// Stop asks the owning service to stop this instance, forcing the stop
// when force is set.
func (i *Instance) Stop(ctx context.Context, force bool) (string, error) {
	return i.svc.Stop(ctx, i.ID(), force)
}

// Start asks the owning service to start this instance.
func (i *Instance) Start(ctx context.Context) (string, error) {
	return i.svc.Start(ctx, i.ID())
}

// Description returns the full provider payload backing this view.
func (i *Instance) Description() map[string]any {
	return i.desc
}
