package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/LeJamon/goLibra/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write an example configuration file",
	Long: `Init writes a fully populated example configuration to the given
path (default librafix.toml) as a starting point. Every value can also
be set through LIBRAFIX_ environment variables.

Examples:
    librafix init
    librafix init /etc/librafix/librafix.toml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) {
	path := "librafix.toml"
	if len(args) == 1 {
		path = args[0]
	}

	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s already exists\n", path)
		os.Exit(1)
	}

	if err := config.SaveExample(path); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote example configuration to %s\n", path)
}
