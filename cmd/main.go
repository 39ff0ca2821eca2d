package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	maqui "github.com/vivax3794/viv-script/pkg"
)

var verbose bool

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "viv",
		Short: "viv compiles Viv-Script programs to native binaries",
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log each pipeline stage")

	root.AddCommand(newIRCommand())
	root.AddCommand(newBuildCommand())
	root.AddCommand(newRunCommand())
	root.AddCommand(newTestCommand())

	return root
}

func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}

	return logger
}

func newIRCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ir <file>",
		Short: "print the generated LLVM IR for a source file without linking it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, filename, err := readSource(args[0])
			if err != nil {
				return err
			}

			compiler := maqui.NewCompiler(defaultTarget(), newLogger())
			ir, err := compiler.Compile(filename, source)
			if err != nil {
				return err
			}

			fmt.Println(ir)
			return nil
		},
	}
}

func newBuildCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "build <file>",
		Short: "compile a source file to a native binary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, filename, err := readSource(args[0])
			if err != nil {
				return err
			}

			if output == "" {
				output = "a.out"
			}

			compiler := maqui.NewCompiler(defaultTarget(), newLogger())
			return compiler.Build(filename, source, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "path of the binary to produce (default a.out)")
	return cmd
}

func newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run <file>",
		Short: "compile a source file and immediately execute it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, filename, err := readSource(args[0])
			if err != nil {
				return err
			}

			binPath, err := os.MkdirTemp("", "viv-run-*")
			if err != nil {
				return err
			}
			defer os.RemoveAll(binPath)

			outPath := binPath + "/a.out"

			compiler := maqui.NewCompiler(defaultTarget(), newLogger())
			if err := compiler.Build(filename, source, outPath); err != nil {
				return err
			}

			run := exec.Command(outPath)
			run.Stdout = os.Stdout
			run.Stderr = os.Stderr
			return run.Run()
		},
	}
}

func newTestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "test <file>",
		Short: "compile and run a source file, reporting its test statements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Test statements report their own pass/fail lines at runtime; running the
			// compiled binary is the whole of what this subcommand needs to do.
			run := newRunCommand()
			return run.RunE(run, args)
		},
	}
}

func readSource(path string) (source, filename string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}

	return string(data), path, nil
}

func defaultTarget() maqui.Target {
	return maqui.Target{
		Arch:   maqui.X86_64,
		Vendor: maqui.Unknown,
		OS:     maqui.Linux,
	}
}
