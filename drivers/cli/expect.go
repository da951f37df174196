package cli

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	expect "github.com/google/goexpect"
	"golang.org/x/crypto/ssh"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/nanoncore/nano-layer1/vendors/common"
)

// DefaultPromptPattern matches common CLI prompts like "hostname#" or "hostname>"
var DefaultPromptPattern = regexp.MustCompile(`(?m)[\w\-\[\]()]+[#>]\s*$`)

// VendorPrompts contains vendor-specific prompt patterns
var VendorPrompts = map[string]*regexp.Regexp{
	// 600-6SL:~$
	"telebyte": regexp.MustCompile(`(?m)[\w\-.]+:~?[$#>]\s*$`),
}

// ExpectSession wraps google/goexpect for line-oriented device CLIs
type ExpectSession struct {
	expecter *expect.GExpect
	promptRE *regexp.Regexp
	timeout  time.Duration
	vendor   string
}

// ExpectSessionConfig holds configuration for creating an expect session
type ExpectSessionConfig struct {
	SSHClient    *ssh.Client
	Vendor       string
	Timeout      time.Duration
	CustomPrompt *regexp.Regexp
}

// ErrPromptTimeout is returned when the prompt does not come back in time
var ErrPromptTimeout = errors.New("timeout waiting for prompt")

// NewExpectSession creates a new interactive CLI session using expect
func NewExpectSession(cfg ExpectSessionConfig) (*ExpectSession, error) {
	if cfg.SSHClient == nil {
		return nil, fmt.Errorf("SSH client is required")
	}

	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	promptRE := cfg.CustomPrompt
	if promptRE == nil {
		if vendorPrompt, ok := VendorPrompts[strings.ToLower(cfg.Vendor)]; ok {
			promptRE = vendorPrompt
		} else {
			promptRE = DefaultPromptPattern
		}
	}

	exp, _, err := expect.SpawnSSH(cfg.SSHClient, cfg.Timeout,
		expect.Verbose(false),
		expect.CheckDuration(100*time.Millisecond),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to spawn SSH expect session: %w", err)
	}

	session := &ExpectSession{
		expecter: exp,
		promptRE: promptRE,
		timeout:  cfg.Timeout,
		vendor:   cfg.Vendor,
	}

	if _, _, err := exp.Expect(promptRE, cfg.Timeout); err != nil {
		exp.Close()
		return nil, fmt.Errorf("failed to detect initial prompt: %w", classifyExpectError(err))
	}

	return session, nil
}

// Execute sends a command and waits for the prompt, returning the output
func (s *ExpectSession) Execute(command string) (string, error) {
	if s.expecter == nil {
		return "", fmt.Errorf("expect session not initialized")
	}

	if err := s.expecter.Send(command + "\n"); err != nil {
		return "", fmt.Errorf("failed to send command: %w", err)
	}

	output, _, err := s.expecter.Expect(s.promptRE, s.timeout)
	if err != nil {
		return output, fmt.Errorf("command %q: %w", command, classifyExpectError(err))
	}

	return s.cleanOutput(output, command), nil
}

// cleanOutput removes terminal codes, the command echo and the prompt.
// The device reply itself (including its own "ACCEPTED  <command>" echo) is kept.
func (s *ExpectSession) cleanOutput(output, command string) string {
	output = common.NormalizeNewlines(common.StripANSI(output))
	lines := strings.Split(output, "\n")
	var cleaned []string

	for i, line := range lines {
		if i == 0 && strings.TrimSpace(line) == strings.TrimSpace(command) {
			continue
		}
		if s.promptRE.MatchString(strings.TrimSpace(line)) {
			continue
		}
		cleaned = append(cleaned, line)
	}

	return strings.TrimSpace(strings.Join(cleaned, "\n"))
}

// classifyExpectError maps goexpect's status errors onto driver errors.
func classifyExpectError(err error) error {
	if status.Code(err) == codes.DeadlineExceeded {
		return fmt.Errorf("%w: %v", ErrPromptTimeout, err)
	}
	return err
}

// Close closes the expect session
func (s *ExpectSession) Close() error {
	if s.expecter != nil {
		err := s.expecter.Close()
		s.expecter = nil
		return err
	}
	return nil
}
