package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var resolveJSON bool

var resolveCmd = &cobra.Command{
	Use:   "resolve <name>",
	Short: "Resolve an instance id by Name tag",
	Long: `Looks up the single instance whose Name tag equals the given value and
prints its instance id. With --json the full description is printed
instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "print the full instance description")
}

func runResolve(cmd *cobra.Command, args []string) error {
	svc, _, err := newService(cmd.Context())
	if err != nil {
		return err
	}

	inst, err := svc.ByName(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if resolveJSON {
		return renderJSON(os.Stdout, inst.Description())
	}
	fmt.Println(inst.ID())
	return nil
}
