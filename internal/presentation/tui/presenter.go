// Package tui renders slides and snippets for the operator.
package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/aretw0/rehearse/pkg/domain"
)

// DefaultWidth is used when the output is not a terminal.
const DefaultWidth = 80

// Presenter prints the slide around the snippet about to run, framed by
// horizontal rules, with the snippet in reverse video.
type Presenter struct {
	out     io.Writer
	profile termenv.Profile
	width   int
	render  func(string) (string, error)
}

// PresenterOption configures a Presenter.
type PresenterOption func(*Presenter)

// WithProfile overrides the detected color profile.
func WithProfile(p termenv.Profile) PresenterOption {
	return func(pr *Presenter) {
		pr.profile = p
	}
}

// WithWidth overrides the detected terminal width.
func WithWidth(width int) PresenterOption {
	return func(pr *Presenter) {
		pr.width = width
	}
}

// WithMarkdown renders slides through render (see NewRenderer) instead of
// printing them raw. The snippet is then shown highlighted below the slide.
func WithMarkdown(render func(string) (string, error)) PresenterOption {
	return func(pr *Presenter) {
		pr.render = render
	}
}

// NewPresenter creates a Presenter writing to out.
func NewPresenter(out io.Writer, opts ...PresenterOption) *Presenter {
	p := &Presenter{
		out:     out,
		profile: termenv.NewOutput(out).Profile,
		width:   Width(out),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Width returns the column count of w when it is a terminal, DefaultWidth
// otherwise.
func Width(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return DefaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	return width
}

// Rule returns a horizontal rule spanning the presenter width.
func (p *Presenter) Rule() string {
	return strings.Repeat("-", p.width)
}

// Highlight renders s in reverse video.
func (p *Presenter) Highlight(s string) string {
	return p.profile.String(s).Reverse().String()
}

func (p *Presenter) Present(ctx context.Context, index int, action domain.Action, slide domain.Slide) error {
	var b strings.Builder
	b.WriteString(p.Rule())
	b.WriteString("\n")

	if p.render != nil {
		rendered, err := p.render(slide.Content)
		if err != nil {
			return fmt.Errorf("render slide %d: %w", slide.Number, err)
		}
		b.WriteString(strings.TrimRight(rendered, "\n"))
		b.WriteString("\n\n")
		b.WriteString(p.Highlight(action.Raw))
	} else if action.Raw != "" && strings.Contains(slide.Content, action.Raw) {
		b.WriteString(strings.Replace(slide.Content, action.Raw, p.Highlight(action.Raw), 1))
	} else {
		b.WriteString(slide.Content)
		if slide.Content != "" {
			b.WriteString("\n")
		}
		b.WriteString(p.Highlight(action.Raw))
	}

	b.WriteString("\n")
	b.WriteString(p.Rule())
	b.WriteString("\n")

	_, err := io.WriteString(p.out, b.String())
	return err
}
