// Package extract turns a slide deck into the ordered list of actions to rehearse.
//
// A deck is a sequence of slides separated by a line holding "--" or "---".
// Anything after a "???" line is speaker notes and is ignored. Inside a slide,
// every fenced code block that sits in an ".exercise[...]" region becomes one
// action: the first line (or first word of a one-line block) is the method,
// the rest is the payload.
package extract

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/rehearse/pkg/domain"
)

const (
	fence        = "```"
	exerciseOpen = ".exercise["
	notesMarker  = "\n???\n"
)

// Extractor parses documents into a domain.Document.
type Extractor struct {
	logger *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger used for extraction warnings.
func WithLogger(l *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = l
	}
}

// New creates an Extractor.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractFile reads and extracts the document at path.
func (e *Extractor) ExtractFile(path string) (*domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return e.Extract(string(data)), nil
}

// Extract parses text. Slides are numbered from 1 in document order.
func (e *Extractor) Extract(text string) *domain.Document {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	doc := &domain.Document{}
	for i, raw := range splitSlides(text) {
		slide := domain.Slide{Number: i + 1, Content: stripNotes(raw)}
		doc.Slides = append(doc.Slides, slide)

		for _, region := range exerciseRegions(slide.Content) {
			snippets := splitSnippets(region)
			if len(snippets) == 0 {
				e.logger.Warn("exercise does not have any ``` snippet", "slide", slide.Number)
				e.logger.Debug("slide content", "slide", slide.Number, "content", slide.Content)
				continue
			}
			for _, snippet := range snippets {
				doc.Actions = append(doc.Actions, newAction(slide.Number, snippet))
			}
		}
	}
	return doc
}

// splitSlides cuts text at separator lines. A separator must have a line on
// both sides, so a leading or trailing rule does not open an empty slide.
func splitSlides(text string) []string {
	lines := strings.Split(text, "\n")
	var slides []string
	start := 0
	for i := 1; i < len(lines)-1; i++ {
		if lines[i] == "--" || lines[i] == "---" {
			slides = append(slides, strings.Join(lines[start:i], "\n"))
			start = i + 1
		}
	}
	return append(slides, strings.Join(lines[start:], "\n"))
}

func stripNotes(slide string) string {
	if i := strings.Index(slide, notesMarker); i >= 0 {
		return slide[:i]
	}
	return slide
}

// exerciseRegions returns the body of every .exercise[...] region. Brackets
// inside fenced code do not count towards nesting; an unclosed region runs to
// the end of the slide.
func exerciseRegions(slide string) []string {
	var regions []string
	rest := slide
	for {
		i := strings.Index(rest, exerciseOpen)
		if i < 0 {
			return regions
		}
		body := rest[i+len(exerciseOpen):]
		end := closingBracket(body)
		if end < 0 {
			return append(regions, body)
		}
		regions = append(regions, body[:end])
		rest = body[end+1:]
	}
}

func closingBracket(body string) int {
	depth := 1
	inFence := false
	for i := 0; i < len(body); i++ {
		if strings.HasPrefix(body[i:], fence) {
			inFence = !inFence
			i += len(fence) - 1
			continue
		}
		if inFence {
			continue
		}
		switch body[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitSnippets returns the text between fence pairs. An unterminated final
// fence still yields its trailing text.
func splitSnippets(region string) []string {
	if !strings.Contains(region, fence) {
		return nil
	}
	parts := strings.Split(region, fence)
	var snippets []string
	for i := 1; i < len(parts); i += 2 {
		snippets = append(snippets, parts[i])
	}
	return snippets
}

// newAction splits a snippet into method and payload. Multi-line snippets
// carry the method alone on the first line; one-liners put the payload right
// after the method.
func newAction(slide int, snippet string) domain.Action {
	var method, payload string
	if i := strings.IndexByte(snippet, '\n'); i >= 0 {
		method, payload = snippet[:i], snippet[i+1:]
	} else if i := strings.IndexByte(snippet, ' '); i >= 0 {
		method, payload = snippet[:i], snippet[i+1:]
	} else {
		method = snippet
	}
	return domain.Action{
		SlideID: slide,
		Raw:     snippet,
		Method:  strings.TrimSpace(method),
		Payload: strings.TrimSpace(payload),
	}
}
