package console

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompter_Ask(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("first\r\nsecond\n"), &out)
	ctx := context.Background()

	got, err := p.Ask(ctx, "one? ")
	require.NoError(t, err)
	assert.Equal(t, "first", got)

	got, err = p.Ask(ctx, "two? ")
	require.NoError(t, err)
	assert.Equal(t, "second", got)

	_, err = p.Ask(ctx, "three? ")
	assert.ErrorIs(t, err, ErrInputClosed)
	assert.Equal(t, "one? two? three? ", out.String())
}

func TestPrompter_Confirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"n", false},
		{"N", false},
		{"y", true},
		{"", true},
		{"no", true},
		{" n", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := NewPrompter(strings.NewReader(tt.input+"\n"), &bytes.Buffer{})
			got, err := p.Confirm(context.Background(), "? ")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrompter_CancelledContext(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	p := NewPrompter(pr, &bytes.Buffer{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Ask(ctx, "never answered: ")
	assert.ErrorIs(t, err, context.Canceled)
}
