package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/pageblocks/cmd/pageblocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var commands = []string{"parse", "links", "crawl", "pages", "show", "delete"}

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	// Use kong.Exit to prevent os.Exit from being called during tests
	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range commands {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestCLI_ParseFlags(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{
		"--insecure", "parse", "https://example.com",
		"--path", "/docs", "--text-only", "--format", "xml", "--start-image", "7",
	})
	require.NoError(t, err)

	assert.True(t, cli.Insecure)
	assert.Equal(t, "https://example.com", cli.Parse.URL)
	assert.Equal(t, "/docs", cli.Parse.Path)
	assert.True(t, cli.Parse.TextOnly)
	assert.Equal(t, "xml", cli.Parse.Format)
	assert.Equal(t, 7, cli.Parse.StartImage)
	assert.Equal(t, "page", cli.Parse.Out, "output directory defaults to ./page")
}

func TestCLI_RejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"parse", "https://example.com", "--format", "csv"})
	require.Error(t, err)
}

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)
	require.NoError(t, err)

	helpOutput := stdout.String()
	for _, cmd := range commands {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
	assert.Contains(t, helpOutput, "Usage:", "Help should have Kong-style Usage prefix")
	assert.Contains(t, helpOutput, "Flags:", "Help should have Kong-style Flags section")
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	err := m.Run(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestMain_Run_HelpWithoutCreatingDB(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	err := m.Run(context.Background(), []string{"--help"}, &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)

	_, err = os.Stat(m.DBPath)
	assert.True(t, os.IsNotExist(err), "help should not create the database")
}

func TestMain_Run_ParseWithoutSaveSkipsDB(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	m := newTestMain(t, siteFetcher(t))

	err := m.Run(context.Background(), []string{"parse", siteRoot, "--out", filepath.Join(dir, "out")}, &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)

	_, err = os.Stat(m.DBPath)
	assert.True(t, os.IsNotExist(err), "parse without --save should not create the database")
}
