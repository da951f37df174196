package cli

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/nanoncore/nano-layer1/types"
	"github.com/nanoncore/nano-layer1/vendors/common"
)

// Driver is one SSH CLI session to a device. It implements types.Session.
type Driver struct {
	config        *types.EquipmentConfig
	sshClient     *ssh.Client
	expectSession *ExpectSession
}

// Dialer opens CLI sessions over SSH. It implements types.Dialer.
type Dialer struct{}

// NewDialer returns an SSH dialer
func NewDialer() *Dialer {
	return &Dialer{}
}

// Dial opens a new, connected session. The caller owns it and must Close it.
func (Dialer) Dial(ctx context.Context, config *types.EquipmentConfig) (types.Session, error) {
	d, err := NewDriver(config)
	if err != nil {
		return nil, err
	}
	if err := d.Connect(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

// NewDriver creates a new CLI driver
func NewDriver(config *types.EquipmentConfig) (*Driver, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}

	if config.Address == "" {
		return nil, fmt.Errorf("address is required")
	}

	config = config.Clone()

	// Default SSH port
	if config.Port == 0 {
		config.Port = 22
	}

	// Default timeout
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	return &Driver{
		config: config,
	}, nil
}

// Connect establishes the SSH connection and waits for the first prompt
func (d *Driver) Connect(ctx context.Context) error {
	promptRE, err := d.customPrompt()
	if err != nil {
		return err
	}

	// Some devices only offer keyboard-interactive instead of password
	keyboardInteractive := ssh.KeyboardInteractive(func(user, instruction string, questions []string, echos []bool) ([]string, error) {
		answers := make([]string, len(questions))
		for i := range questions {
			answers[i] = d.config.Password
		}
		return answers, nil
	})

	sshConfig := &ssh.ClientConfig{
		User: d.config.Username,
		Auth: []ssh.AuthMethod{
			ssh.Password(d.config.Password),
			keyboardInteractive,
		},
		Timeout:         d.config.Timeout,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), //nolint:gosec // lab equipment without managed host keys
	}

	target := fmt.Sprintf("%s:%d", d.config.Address, d.config.Port)

	client, err := dialContext(ctx, target, sshConfig)
	if err != nil {
		return &types.TransportError{Err: fmt.Errorf("failed to dial SSH %s: %w", target, err)}
	}

	d.sshClient = client

	expectSession, err := NewExpectSession(ExpectSessionConfig{
		SSHClient:    client,
		Vendor:       string(d.config.Vendor),
		Timeout:      d.config.Timeout,
		CustomPrompt: promptRE,
	})
	if err != nil {
		client.Close()
		d.sshClient = nil
		return &types.TransportError{Err: fmt.Errorf("failed to create expect session: %w", err)}
	}

	d.expectSession = expectSession

	return nil
}

// dialContext honours ctx while the TCP connection and SSH handshake run.
func dialContext(ctx context.Context, target string, cfg *ssh.ClientConfig) (*ssh.Client, error) {
	type result struct {
		client *ssh.Client
		err    error
	}
	done := make(chan result, 1)
	go func() {
		c, err := ssh.Dial("tcp", target, cfg)
		done <- result{c, err}
	}()

	select {
	case r := <-done:
		return r.client, r.err
	case <-ctx.Done():
		go func() {
			if r := <-done; r.client != nil {
				r.client.Close()
			}
		}()
		return nil, ctx.Err()
	}
}

func (d *Driver) customPrompt() (*regexp.Regexp, error) {
	pattern, ok := common.MetadataString(d.config.Metadata, types.MetadataPrompt)
	if !ok || pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid %s pattern %q: %w", types.MetadataPrompt, pattern, err)
	}
	return re, nil
}

// Close closes the expect session and the SSH connection
func (d *Driver) Close() error {
	if d.expectSession != nil {
		_ = d.expectSession.Close()
		d.expectSession = nil
	}
	if d.sshClient != nil {
		err := d.sshClient.Close()
		d.sshClient = nil
		return err
	}
	return nil
}

// IsConnected returns true if connected
func (d *Driver) IsConnected() bool {
	return d.sshClient != nil && d.expectSession != nil
}

// execCommand executes a CLI command using the expect-based PTY session
func (d *Driver) execCommand(ctx context.Context, command string) (string, error) {
	if !d.IsConnected() {
		return "", &types.TransportError{Command: command, Err: types.ErrNotConnected}
	}
	if err := ctx.Err(); err != nil {
		return "", &types.TransportError{Command: command, Err: err}
	}

	output, err := d.expectSession.Execute(command)
	if err != nil {
		return output, &types.TransportError{Command: command, Err: err}
	}

	return output, nil
}

// ExecCommand implements types.CLIExecutor - executes a single CLI command
func (d *Driver) ExecCommand(ctx context.Context, command string) (string, error) {
	return d.execCommand(ctx, command)
}

// ExecCommands implements types.CLIExecutor - executes multiple CLI commands sequentially
func (d *Driver) ExecCommands(ctx context.Context, commands []string) ([]string, error) {
	results := make([]string, 0, len(commands))
	for _, cmd := range commands {
		output, err := d.execCommand(ctx, cmd)
		if err != nil {
			return results, err
		}
		results = append(results, output)
	}
	return results, nil
}

var (
	_ types.Session = (*Driver)(nil)
	_ types.Dialer  = Dialer{}
)
