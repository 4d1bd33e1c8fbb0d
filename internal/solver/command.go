package solver

import (
	"bytes"
	"context"
	"os/exec"
)

// CommandExecutor runs one external process to completion, or until ctx is
// done. Adapted from the local-command half of the deployment executor this
// module was derived from: context-aware and split-stream instead of
// combined-output, since ProcessSolver needs stdout (the result) kept
// separate from stderr (diagnostics) and needs to honor a solver timeout.
type CommandExecutor interface {
	SetStdin(stdin []byte)
	Run(ctx context.Context) (stdout, stderr []byte, err error)
}

// CommandBuilder builds CommandExecutors. The indirection exists so tests
// can substitute MockCommandBuilder instead of shelling out.
type CommandBuilder interface {
	BuildCommand(name string, args ...string) CommandExecutor
}

// RealCommandExecutor wraps os/exec.
type RealCommandExecutor struct {
	name  string
	args  []string
	stdin []byte
}

func (r *RealCommandExecutor) SetStdin(stdin []byte) { r.stdin = stdin }

func (r *RealCommandExecutor) Run(ctx context.Context) (stdout, stderr []byte, err error) {
	cmd := exec.CommandContext(ctx, r.name, r.args...)
	if r.stdin != nil {
		cmd.Stdin = bytes.NewReader(r.stdin)
	}
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	err = cmd.Run()
	return outBuf.Bytes(), errBuf.Bytes(), err
}

// RealCommandBuilder builds RealCommandExecutors.
type RealCommandBuilder struct{}

func NewRealCommandBuilder() *RealCommandBuilder { return &RealCommandBuilder{} }

func (b *RealCommandBuilder) BuildCommand(name string, args ...string) CommandExecutor {
	return &RealCommandExecutor{name: name, args: args}
}

// MockCommandExecutor implements CommandExecutor for tests.
type MockCommandExecutor struct {
	Stdout, Stderr []byte
	Err            error
	Stdin          []byte
	RunCalled      bool
}

func (m *MockCommandExecutor) SetStdin(stdin []byte) { m.Stdin = stdin }

func (m *MockCommandExecutor) Run(ctx context.Context) ([]byte, []byte, error) {
	m.RunCalled = true
	return m.Stdout, m.Stderr, m.Err
}

// MockCommandBuilder records built commands and hands back a configurable
// executor, for testing ProcessSolver without running a real process.
type MockCommandBuilder struct {
	Commands     []MockBuiltCommand
	NextExecutor *MockCommandExecutor
}

type MockBuiltCommand struct {
	Name string
	Args []string
}

func NewMockCommandBuilder() *MockCommandBuilder { return &MockCommandBuilder{} }

func (b *MockCommandBuilder) BuildCommand(name string, args ...string) CommandExecutor {
	b.Commands = append(b.Commands, MockBuiltCommand{Name: name, Args: args})
	if b.NextExecutor != nil {
		executor := b.NextExecutor
		b.NextExecutor = nil
		return executor
	}
	return &MockCommandExecutor{}
}

func (b *MockCommandBuilder) LastCommand() *MockBuiltCommand {
	if len(b.Commands) == 0 {
		return nil
	}
	return &b.Commands[len(b.Commands)-1]
}
