package confirm_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/rehearse/pkg/confirm"
	"github.com/aretw0/rehearse/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		answer string
		want   domain.Decision
	}{
		{"", domain.Proceed()},
		{"c", domain.ProceedNonInteractive()},
		{"12", domain.JumpTo(12)},
		{"0", domain.JumpTo(0)},
		{"n", domain.Skip()},
		{"C", domain.Skip()},
		{"1a", domain.Skip()},
		{"-1", domain.Skip()},
		{"99999999999999999999999", domain.Skip()},
	}
	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			assert.Equal(t, tt.want, confirm.ParseAnswer(tt.answer))
		})
	}
}

func TestText_Confirm(t *testing.T) {
	var out bytes.Buffer
	prompt := confirm.NewText(strings.NewReader("\nc\n7\nskip\n"), &out)
	ctx := context.Background()

	want := []domain.Decision{
		domain.Proceed(),
		domain.ProceedNonInteractive(),
		domain.JumpTo(7),
		domain.Skip(),
	}
	for i, w := range want {
		got, err := prompt.Confirm(ctx, i)
		require.NoError(t, err)
		assert.Equal(t, w, got, "answer %d", i)
	}
	assert.Contains(t, out.String(), "[3] Shall we execute that snippet above?")

	_, err := prompt.Confirm(ctx, 4)
	assert.ErrorIs(t, err, io.EOF)
}

func TestText_LastLineWithoutNewline(t *testing.T) {
	prompt := confirm.NewText(strings.NewReader("5"), io.Discard)
	got, err := prompt.Confirm(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, domain.JumpTo(5), got)
}

func TestText_RetriesOnInvalidAnswer(t *testing.T) {
	t.Setenv(confirm.EnvMaxAnswerSize, "4")

	var out bytes.Buffer
	prompt := confirm.NewText(strings.NewReader("toolong\n\n"), &out)

	got, err := prompt.Confirm(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.Proceed(), got)
	assert.Contains(t, out.String(), "Please try again.")
}

func TestText_ContextCancel(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()

	prompt := confirm.NewText(r, io.Discard)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := prompt.Confirm(ctx, 0)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestScript(t *testing.T) {
	s := confirm.NewScript(domain.Skip(), domain.JumpTo(3))
	ctx := context.Background()

	d, _ := s.Confirm(ctx, 0)
	assert.Equal(t, domain.Skip(), d)
	d, _ = s.Confirm(ctx, 1)
	assert.Equal(t, domain.JumpTo(3), d)
	d, _ = s.Confirm(ctx, 3)
	assert.Equal(t, domain.Proceed(), d)

	assert.Equal(t, []int{0, 1, 3}, s.Asked())
}
