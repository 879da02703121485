package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe <instance-id>",
	Short: "Print an instance description",
	Long: `Fetches the instance with the given id and prints its full description
as indented JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: runDescribe,
}

func runDescribe(cmd *cobra.Command, args []string) error {
	svc, _, err := newService(cmd.Context())
	if err != nil {
		return err
	}

	inst, err := svc.ByID(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return renderJSON(os.Stdout, inst.Description())
}
