package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/btouchard/zivc/internal/compiler/diagnostics"
	"github.com/btouchard/zivc/internal/compiler/driver"
	"github.com/btouchard/zivc/internal/compiler/source"
)

func newToolchainCmd() *cobra.Command {
	var showSource, showLexer, dumpTree bool

	cmd := &cobra.Command{
		Use:   "toolchain <file>",
		Short: "Run the toolchain driver over a single source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToolchain(args[0], showSource, showLexer, dumpTree)
		},
	}

	cmd.Flags().BoolVar(&showSource, "source", false, "review the source buffer")
	cmd.Flags().BoolVar(&showLexer, "lexer", false, "review the token buffer")
	cmd.Flags().BoolVar(&dumpTree, "dump-tree", false, "lex, parse, and print the AST")

	cmd.Flags().Int("indent-width", 4, "spaces per indentation level")
	cmd.Flags().String("color", "auto", "diagnostic color mode: auto, always, never")
	cmd.Flags().Int("max-errors", 0, "stop after this many accumulated errors (0 = unbounded)")
	viper.BindPFlag("indent-width", cmd.Flags().Lookup("indent-width"))
	viper.BindPFlag("color", cmd.Flags().Lookup("color"))
	viper.BindPFlag("max-errors", cmd.Flags().Lookup("max-errors"))

	return cmd
}

func runToolchain(filename string, showSource, showLexer, dumpTree bool) error {
	buf, err := driver.Load(source.OSFileSystem{}, filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		return err
	}

	if showSource {
		printSourceBuffer(buf)
	}

	log := newLogger()
	defer log.Sync()

	consumer := diagnostics.NewConsoleConsumer(os.Stderr, viper.GetString("color"))
	d := driver.New(consumer, log, driver.Options{
		IndentWidth: viper.GetInt("indent-width"),
		MaxErrors:   viper.GetInt("max-errors"),
	})

	result := d.Run(buf)

	if showLexer {
		printTokenBuffer(result.Tokens)
	}
	if dumpTree && result.Tree != nil {
		printTree(result.Tree)
	}

	if result.Phase.Errors() > 0 {
		exitCode = 1
		return nil
	}
	exitCode = 0
	return nil
}

func newLogger() *zap.SugaredLogger {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}
