package telebyte

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/nanoncore/nano-layer1/types"
)

// CommandExecutor renders templates and sends them through a CLI session.
type CommandExecutor struct {
	cli types.CLIExecutor
	log *logrus.Entry
}

// NewCommandExecutor binds an executor to a session.
func NewCommandExecutor(cli types.CLIExecutor, log *logrus.Entry) *CommandExecutor {
	return &CommandExecutor{cli: cli, log: log}
}

// Execute renders tmpl with params, sends it and returns the reply verbatim.
// Transport failures come back as *types.TransportError; nothing is retried.
func (e *CommandExecutor) Execute(ctx context.Context, tmpl CommandTemplate, params Params) (string, error) {
	command, err := tmpl.Render(params)
	if err != nil {
		return "", err
	}
	return e.send(ctx, command)
}

// Query executes tmpl and classifies the reply.
func (e *CommandExecutor) Query(ctx context.Context, tmpl CommandTemplate, params Params) (Response, error) {
	command, err := tmpl.Render(params)
	if err != nil {
		return Response{}, err
	}
	output, err := e.send(ctx, command)
	if err != nil {
		return Response{}, err
	}
	resp := Classify(output)
	resp.Command = command
	return resp, nil
}

func (e *CommandExecutor) send(ctx context.Context, command string) (string, error) {
	e.log.WithField("command", command).Debug("sending command")

	output, err := e.cli.ExecCommand(ctx, command)
	if err != nil {
		var te *types.TransportError
		if errors.As(err, &te) {
			return output, err
		}
		return output, &types.TransportError{Command: command, Err: err}
	}
	return output, nil
}
