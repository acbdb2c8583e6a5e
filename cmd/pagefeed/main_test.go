package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/pagefeed/internal/cli"
	"github.com/rshade/pagefeed/pkg/version"
)

func TestMainComponents(t *testing.T) {
	t.Run("cli root command", func(t *testing.T) {
		root := cli.NewRootCmd(version.String())
		assert.NotNil(t, root)
		assert.Equal(t, "pagefeed", root.Use)
		assert.Contains(t, root.Version, version.GetVersion())
	})
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil error returns 0", err: nil, want: 0},
		{name: "generic error", err: errors.New("boom"), want: 1},
		{name: "cancelled", err: context.Canceled, want: exitInterrupted},
		{name: "wrapped cancel", err: fmt.Errorf("loading page 3: %w", context.Canceled), want: exitInterrupted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}
