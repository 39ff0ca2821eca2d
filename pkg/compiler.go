package maqui

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Arch string
type Vendor string
type OS string

const (
	X86_64 Arch = "x86_64"

	Unknown Vendor = "unknown"

	Windows OS = "windows64"
	Linux   OS = "linux"
	Darwin  OS = "darwin"
)

// Target names the triple the final linking step cross-compiles for.
type Target struct {
	Arch   Arch
	Vendor Vendor
	OS     OS
}

func (t Target) String() string {
	return fmt.Sprintf("%s-%s-%s", t.Arch, t.Vendor, t.OS)
}

// Compiler drives the full pipeline — lex, parse, definitions, types, IR generation — and
// optionally the external link step. A nil logger is replaced with a no-op one, so a
// Compiler is always safe to log through.
type Compiler struct {
	target Target
	logger *zap.Logger
}

// NewCompiler builds a Compiler for target. Pass nil for logger to disable stage logging.
func NewCompiler(target Target, logger *zap.Logger) *Compiler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Compiler{target: target, logger: logger}
}

// Compile runs the pipeline over source (reported against filename in diagnostics) and
// returns the emitted LLVM textual IR, or the first compile error's rendered diagnostic.
func (c *Compiler) Compile(filename, source string) (string, error) {
	lexStart := time.Now()
	tokens, err := NewLexer(filename, source).Tokenize()
	c.logStage("lex", filename, lexStart)
	if err != nil {
		return "", c.report(err, source)
	}

	parseStart := time.Now()
	file, err := NewParser(tokens).ParseFile()
	c.logStage("parse", filename, parseStart)
	if err != nil {
		return "", c.report(err, source)
	}

	defStart := time.Now()
	err = NewDefinitionPass().Run(file)
	c.logStage("definitions", filename, defStart)
	if err != nil {
		return "", c.report(err, source)
	}

	typeStart := time.Now()
	err = NewTypePass().Run(file)
	c.logStage("types", filename, typeStart)
	if err != nil {
		return "", c.report(err, source)
	}

	irStart := time.Now()
	ir := NewIRGen(filename).Run(file)
	c.logStage("irgen", filename, irStart)

	return ir, nil
}

// Build compiles source and pipes the resulting IR through the system clang to produce a
// native binary at outPath.
func (c *Compiler) Build(filename, source, outPath string) error {
	ir, err := c.Compile(filename, source)
	if err != nil {
		return err
	}

	return c.link(ir, outPath)
}

func (c *Compiler) link(ir, outPath string) error {
	cmd := exec.Command("clang",
		"-x", "ir",
		"--target="+c.target.String(),
		"-o", outPath,
		"-",
	)

	r, w := io.Pipe()
	cmd.Stdin = r

	var eg errgroup.Group
	eg.Go(func() error {
		if _, err := w.Write([]byte(ir)); err != nil {
			return err
		}

		return w.Close()
	})

	eg.Go(func() error {
		out, err := cmd.CombinedOutput()
		if err != nil {
			return errors.New(fmt.Sprintf("%v: %s", err, out))
		}

		return nil
	})

	return eg.Wait()
}

func (c *Compiler) logStage(stage, filename string, start time.Time) {
	c.logger.Debug("pipeline stage complete",
		zap.String("stage", stage),
		zap.String("file", filename),
		zap.Duration("elapsed", time.Since(start)),
	)
}

func (c *Compiler) report(err error, source string) error {
	var ce *CompileError
	if errors.As(err, &ce) {
		return errors.New(ce.Report(source))
	}

	return err
}
