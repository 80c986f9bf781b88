// Package confirm provides confirmation sources asked by the driver before
// each effectful action.
package confirm

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/aretw0/rehearse/pkg/domain"
)

// ParseAnswer maps an operator answer to a decision:
// empty proceeds once, "c" proceeds and stops prompting, a digit string jumps
// to that index, anything else skips the action.
func ParseAnswer(answer string) domain.Decision {
	switch {
	case answer == "":
		return domain.Proceed()
	case answer == "c":
		return domain.ProceedNonInteractive()
	case isDigits(answer):
		n, err := strconv.Atoi(answer)
		if err != nil {
			return domain.Skip()
		}
		return domain.JumpTo(n)
	default:
		return domain.Skip()
	}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// Text asks on a line-based prompt.
type Text struct {
	Reader *bufio.Reader
	Writer io.Writer

	inputChan chan inputResult
	startOnce sync.Once
}

type inputResult struct {
	text string
	err  error
}

// NewText creates a prompt reading from r and writing to w.
func NewText(r io.Reader, w io.Writer) *Text {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &Text{
		Reader: bufio.NewReader(r),
		Writer: w,
	}
}

// The pump reads lines on its own goroutine so a cancelled context can
// abandon a prompt that is blocked on stdin.
func (t *Text) initPump() {
	t.startOnce.Do(func() {
		t.inputChan = make(chan inputResult)
		go t.pump()
	})
}

func (t *Text) pump() {
	for {
		text, err := t.Reader.ReadString('\n')
		if text != "" || err == nil {
			t.inputChan <- inputResult{text: text}
		}
		if err != nil {
			if err != io.EOF {
				t.inputChan <- inputResult{err: err}
			}
			close(t.inputChan)
			return
		}
	}
}

// Confirm shows the prompt for index and waits for an answer.
// Returns io.EOF when the input is exhausted.
func (t *Text) Confirm(ctx context.Context, index int) (domain.Decision, error) {
	t.initPump()

	for {
		select {
		case <-ctx.Done():
			return domain.Decision{}, ctx.Err()
		default:
			fmt.Fprintf(t.Writer, "[%d] Shall we execute that snippet above? ('c' to continue without further prompting) ", index)
		}

		select {
		case <-ctx.Done():
			return domain.Decision{}, ctx.Err()
		case res, ok := <-t.inputChan:
			if !ok {
				return domain.Decision{}, io.EOF
			}
			if res.err != nil {
				return domain.Decision{}, fmt.Errorf("input error: %w", res.err)
			}

			answer, err := SanitizeAnswer(strings.TrimSpace(res.text))
			if err != nil {
				fmt.Fprintf(t.Writer, "Error: %v. Please try again.\n", err)
				continue
			}
			return ParseAnswer(answer), nil
		}
	}
}

// Script replays a fixed list of decisions, then proceeds for every further
// question. Useful for rehearsing a deck unattended with a few skips.
type Script struct {
	mu        sync.Mutex
	decisions []domain.Decision
	asked     []int
}

// NewScript creates a Script.
func NewScript(decisions ...domain.Decision) *Script {
	return &Script{decisions: decisions}
}

func (s *Script) Confirm(ctx context.Context, index int) (domain.Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.asked = append(s.asked, index)
	if len(s.decisions) == 0 {
		return domain.Proceed(), nil
	}
	d := s.decisions[0]
	s.decisions = s.decisions[1:]
	return d, nil
}

// Asked returns the indexes the script was asked about, in order.
func (s *Script) Asked() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, len(s.asked))
	copy(out, s.asked)
	return out
}
