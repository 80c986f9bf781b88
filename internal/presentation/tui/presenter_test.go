package tui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/rehearse/pkg/domain"
)

const reverse = "\x1b[7m"

func TestPresenter_HighlightsSnippetInPlace(t *testing.T) {
	var out bytes.Buffer
	p := NewPresenter(&out, WithProfile(termenv.ANSI), WithWidth(10))

	slide := domain.Slide{Number: 1, Content: "# Intro\n```bash\nls\n```\nafter"}
	action := domain.Action{SlideID: 1, Raw: "bash\nls\n", Method: "bash", Payload: "ls"}

	require.NoError(t, p.Present(context.Background(), 0, action, slide))

	got := out.String()
	lines := strings.Split(got, "\n")
	assert.Equal(t, "----------", lines[0])
	assert.Equal(t, "----------", lines[len(lines)-2])
	assert.Contains(t, got, "```"+reverse+"bash\nls\n")
	assert.Contains(t, got, "after")
}

func TestPresenter_SnippetNotInSlide(t *testing.T) {
	var out bytes.Buffer
	p := NewPresenter(&out, WithProfile(termenv.Ascii), WithWidth(4))

	require.NoError(t, p.Present(context.Background(), 0,
		domain.Action{Raw: "bash ls"}, domain.Slide{Content: "text"}))

	assert.Equal(t, "----\ntext\nbash ls\n----\n", out.String())
}

func TestPresenter_Markdown(t *testing.T) {
	var out bytes.Buffer
	render := func(md string) (string, error) { return "RENDERED(" + md + ")\n", nil }
	p := NewPresenter(&out, WithProfile(termenv.Ascii), WithWidth(3), WithMarkdown(render))

	require.NoError(t, p.Present(context.Background(), 0,
		domain.Action{Raw: "bash\nls"}, domain.Slide{Content: "# T"}))

	assert.Equal(t, "---\nRENDERED(# T)\n\nbash\nls\n---\n", out.String())
}

func TestPresenter_MarkdownError(t *testing.T) {
	p := NewPresenter(&bytes.Buffer{}, WithMarkdown(func(string) (string, error) {
		return "", errors.New("bad style")
	}))
	err := p.Present(context.Background(), 0, domain.Action{}, domain.Slide{Number: 3})
	assert.ErrorContains(t, err, "render slide 3")
}

func TestWidth_NonTerminal(t *testing.T) {
	assert.Equal(t, DefaultWidth, Width(&bytes.Buffer{}))
}

func TestNewRenderer(t *testing.T) {
	render, err := NewRenderer(40)
	require.NoError(t, err)

	out, err := render("# Title\n\nsome *text*")
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "text")
}

func TestPrintBanner(t *testing.T) {
	var out bytes.Buffer
	PrintBanner(&out, termenv.Ascii, "v1.2.3")
	assert.Contains(t, out.String(), "v1.2.3")
	assert.Contains(t, out.String(), "|_|")
}
