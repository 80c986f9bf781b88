package testutils

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/aretw0/rehearse/pkg/domain"
)

var tokenEcho = regexp.MustCompile(`^echo (\S+) \$\?\n$`)

// FakeShell is an in-memory ports.Terminal that behaves like a tiny shell
// behind a "$" prompt. Commands complete immediately unless listed in Hang.
type FakeShell struct {
	mu sync.Mutex

	// ExitCodes maps a command (without trailing newline) to its exit status.
	ExitCodes map[string]int
	// Output maps a command to lines it prints.
	Output map[string][]string
	// Hang lists commands that keep running until interrupted with ^C.
	Hang map[string]bool
	// SendErr and CaptureErr simulate a broken control channel.
	SendErr    error
	CaptureErr error
	// SwallowTokens drops exit-code echoes, simulating a lost token.
	SwallowTokens bool

	sent     []string
	lines    []string
	running  bool
	lastCode int
	captures int
}

// NewFakeShell returns an idle shell showing only its prompt.
func NewFakeShell() *FakeShell {
	return &FakeShell{
		ExitCodes: map[string]int{},
		Output:    map[string][]string{},
		Hang:      map[string]bool{},
	}
}

func (s *FakeShell) SendKeys(ctx context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.SendErr != nil {
		return fmt.Errorf("%w: %w", domain.ErrControlChannel, s.SendErr)
	}
	s.sent = append(s.sent, text)

	if m := tokenEcho.FindStringSubmatch(text); m != nil && !s.running {
		s.lines = append(s.lines, "$ "+strings.TrimSuffix(text, "\n"))
		if !s.SwallowTokens {
			s.lines = append(s.lines, fmt.Sprintf("%s %d", m[1], s.lastCode))
		}
		return nil
	}

	if text == "\x03" {
		if s.running {
			s.running = false
			s.lastCode = 130
			s.lines = append(s.lines, "^C")
		}
		return nil
	}

	if !strings.HasSuffix(text, "\n") {
		// Keystrokes without Enter just sit on the command line.
		return nil
	}

	cmd := strings.TrimSuffix(text, "\n")
	s.lines = append(s.lines, "$ "+cmd)
	s.lines = append(s.lines, s.Output[cmd]...)
	s.lastCode = s.ExitCodes[cmd]
	s.running = s.Hang[cmd]
	return nil
}

func (s *FakeShell) Capture(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.CaptureErr != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrControlChannel, s.CaptureErr)
	}
	s.captures++

	screen := strings.Join(s.lines, "\n")
	if !s.running {
		screen += "\n$"
	}
	return screen + "\n", nil
}

// Sent returns every text passed to SendKeys, in order.
func (s *FakeShell) Sent() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.sent))
	copy(out, s.sent)
	return out
}

// Commands returns sent texts excluding exit-code echoes.
func (s *FakeShell) Commands() []string {
	var out []string
	for _, text := range s.Sent() {
		if !tokenEcho.MatchString(text) {
			out = append(out, text)
		}
	}
	return out
}

// Captures returns how many times the screen was captured.
func (s *FakeShell) Captures() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.captures
}
