package ec2

import "context"

// Service locates instances and issues lifecycle commands against them.
// Callers depend only on this interface; the backing transport is either
// the AWS command line tool or the AWS SDK.
type Service interface {
	// ByName resolves the single instance whose Name tag equals name.
	ByName(ctx context.Context, name string) (*Instance, error)

	// ByID resolves the single instance with the given instance id.
	ByID(ctx context.Context, id string) (*Instance, error)

	// Reload re-resolves inst by its id and returns a fresh descriptor.
	// The argument is left untouched.
	Reload(ctx context.Context, inst *Instance) (*Instance, error)

	// Stop asks the provider to stop the instance with the given id,
	// forcing the stop when force is set. The command is gated by
	// interactive confirmation and returns the provider's response.
	Stop(ctx context.Context, id string, force bool) (string, error)

	// Start asks the provider to start the instance with the given id and
	// returns the provider's response.
	Start(ctx context.Context, id string) (string, error)
}
