package cli

import (
	"github.com/spf13/cobra"

	"github.com/ec2ctl-io/ec2ctl/internal/restart"
)

var restartCmd = &cobra.Command{
	Use:   "restart <instance-id>",
	Short: "Force-restart an instance",
	Long: `Stops the instance with a forced stop, waits for it to reach the stopped
state, starts it again and waits until it is running.

The stop is gated by interactive confirmation. Restarting polls until the
instance converges; cancel with Ctrl-C to give up.`,
	Args: cobra.ExactArgs(1),
	RunE: runRestart,
}

func runRestart(cmd *cobra.Command, args []string) error {
	svc, cfg, err := newService(cmd.Context())
	if err != nil {
		return err
	}

	orch := restart.New(svc, logger)
	orch.PollInterval = cfg.PollInterval()
	return orch.ForceRestart(cmd.Context(), args[0])
}
