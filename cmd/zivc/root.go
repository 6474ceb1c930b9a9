package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// exitCode is set by whichever sub-command ran, so main can report a
// diagnostic-driven failure (exit 1) even though cobra itself saw no
// Go error. It defaults to 1 so a cobra-level error (bad flags,
// missing argument) also exits non-zero without every RunE having to
// set it explicitly.
var exitCode = 1

var verbose bool

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "zivc",
		Short: "Ziv Programming Language toolchain",
		// cobra prints its own usage/error on an unknown sub-command;
		// a bare invocation with no args falls through to RunE below,
		// matching zivc/command/command_manager.cpp's else branch.
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(os.Stderr, "Error: No command specified")
			return errNoCommand
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log phase timings and tracing to stderr")
	viper.SetEnvPrefix("zivc")
	viper.AutomaticEnv()

	root.AddCommand(newToolchainCmd())
	return root
}

var errNoCommand = fmt.Errorf("no command specified")
