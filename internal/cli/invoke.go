package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var invokeCmd = &cobra.Command{
	Use:   "invoke <command>",
	Short: "Invoke a registered command by ID or description",
	Long: `Invokes a host command headlessly. The name may be a command ID such as
speedtest.start or a loose match on its description, e.g.
"velocidad invoke prueba".

Use --list to print the registered commands.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if invokeList {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: runInvoke,
}

var invokeList bool

func init() {
	invokeCmd.Flags().BoolVarP(&invokeList, "list", "l", false, "list registered commands")
	rootCmd.AddCommand(invokeCmd)
}

func runInvoke(cmd *cobra.Command, args []string) error {
	if invokeList {
		return listCommands(cmd)
	}
	return invokeHeadless(cmd, args[0])
}

func listCommands(cmd *cobra.Command) error {
	a, err := newApp(cmd.Context(), appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	for _, c := range a.host.Commands().All() {
		fmt.Fprintf(out, "%-20s %s\n", c.ID, c.Description)
	}
	return nil
}
