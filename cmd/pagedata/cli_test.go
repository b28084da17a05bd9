package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/pagedata/cmd/pagedata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var commands = []string{"hydration", "dump", "search", "watch"}

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	for _, cmd := range commands {
		assert.Contains(t, stdout.String(), cmd, "Help should mention %s command", cmd)
	}
}

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	for _, arg := range []string{"--help", "-h", "help"} {
		t.Run(arg, func(t *testing.T) {
			t.Parallel()

			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}

			err := main.NewMain().Run(context.Background(), []string{arg}, stdout, stderr)

			require.NoError(t, err)
			helpOutput := stdout.String()
			for _, cmd := range commands {
				assert.Contains(t, helpOutput, cmd)
			}
			assert.Contains(t, helpOutput, "Usage:")
			assert.Contains(t, helpOutput, "Flags:")
			assert.Contains(t, helpOutput, "--engine")
		})
	}
}

func TestMain_Run_NoArgsShowsHelpAndFails(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := main.NewMain().Run(context.Background(), nil, stdout, stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
	assert.Contains(t, stdout.String(), "Usage:")
}

func TestMain_Run_RejectsUnknownCommand(t *testing.T) {
	t.Parallel()

	err := main.NewMain().Run(context.Background(), []string{"crawl"}, &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
}
