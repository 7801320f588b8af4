// Package installer runs the package manager command that adds the type
// declarations the generated controller needs.
package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/swproxy/strapi-webhook-proxy/internal/logging"
	"github.com/swproxy/strapi-webhook-proxy/internal/outcome"
)

// StepName identifies install outcomes.
const StepName = "install"

// DefaultCommand installs the Koa type declarations as a dev dependency.
var DefaultCommand = []string{"npm", "install", "--save-dev", "@types/koa"}

// Runner executes a resolved command. It exists so tests can avoid
// spawning a package manager.
type Runner interface {
	Run(ctx context.Context, cmd *exec.Cmd) error
}

type execRunner struct{}

func (execRunner) Run(_ context.Context, cmd *exec.Cmd) error { return cmd.Run() }

// Installer runs Command in a project directory with the console attached.
type Installer struct {
	Command []string

	// Stdin, Stdout and Stderr default to the process streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Runner   Runner
	LookPath func(file string) (string, error)
}

// New returns an Installer for command, or DefaultCommand when it is empty.
func New(command []string) *Installer {
	if len(command) == 0 {
		command = DefaultCommand
	}
	return &Installer{Command: command}
}

// CommandLine returns the command as the operator would type it.
func (i *Installer) CommandLine() string {
	return strings.Join(i.Command, " ")
}

// Package returns the last argument of the command, the package installed.
func (i *Installer) Package() string {
	if len(i.Command) == 0 {
		return ""
	}
	return i.Command[len(i.Command)-1]
}

// Install runs the command in dir. Failures are reported as a Failed
// outcome carrying the command to run by hand; they are never fatal.
func (i *Installer) Install(ctx context.Context, dir string) outcome.Outcome {
	line := i.CommandLine()
	fail := func(err error) outcome.Outcome {
		o := outcome.NewFailed(StepName, line, err)
		o.Message = fmt.Sprintf("Failed to install %s. Please run: %s", i.Package(), line)
		return o
	}

	if len(i.Command) == 0 {
		return fail(errors.New("empty install command"))
	}

	lookPath := i.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	bin, err := lookPath(i.Command[0])
	if err != nil {
		return fail(fmt.Errorf("locating %s: %w", i.Command[0], err))
	}

	cmd := exec.CommandContext(ctx, bin, i.Command[1:]...)
	cmd.Dir = dir
	cmd.Stdin = orReader(i.Stdin, os.Stdin)
	cmd.Stdout = orWriter(i.Stdout, os.Stdout)
	cmd.Stderr = orWriter(i.Stderr, os.Stderr)

	runner := i.Runner
	if runner == nil {
		runner = execRunner{}
	}

	logging.Get(ctx).Debug("running installer", "command", line, "dir", dir)
	if err := runner.Run(ctx, cmd); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fail(fmt.Errorf("%s exited with status %d: %w", i.Command[0], exitErr.ExitCode(), err))
		}
		return fail(fmt.Errorf("running %s: %w", line, err))
	}

	return outcome.NewApplied(StepName, line, "Installed %s", i.Package())
}

func orReader(r, def io.Reader) io.Reader {
	if r == nil {
		return def
	}
	return r
}

func orWriter(w, def io.Writer) io.Writer {
	if w == nil {
		return def
	}
	return w
}
