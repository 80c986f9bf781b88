package confirm

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// EnvMaxAnswerSize overrides DefaultMaxAnswerSize.
const EnvMaxAnswerSize = "REHEARSE_MAX_ANSWER_SIZE"

// DefaultMaxAnswerSize bounds a single prompt answer. Valid answers are a
// handful of characters; anything this long is a paste accident.
const DefaultMaxAnswerSize = 256

var (
	ErrAnswerTooLarge = errors.New("answer exceeds maximum allowed size")
	ErrInvalidUTF8    = errors.New("answer contains invalid UTF-8 sequences")
)

// SanitizeAnswer rejects oversized or non-UTF-8 answers and strips control
// characters such as escape sequences left by arrow keys.
func SanitizeAnswer(answer string) (string, error) {
	if limit := maxAnswerSize(); len(answer) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrAnswerTooLarge, len(answer), limit)
	}
	if !utf8.ValidString(answer) {
		return "", ErrInvalidUTF8
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\t' {
			return -1
		}
		return r
	}, answer), nil
}

func maxAnswerSize() int {
	if val := os.Getenv(EnvMaxAnswerSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxAnswerSize
}
