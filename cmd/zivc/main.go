// Command zivc is the Ziv toolchain's command-line front-end: lex,
// parse, and check a single source file, reporting diagnostics.
package main

import "os"

func main() {
	os.Exit(run())
}

func run() int {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		return 1
	}
	return exitCode
}
