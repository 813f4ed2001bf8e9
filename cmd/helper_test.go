package cmd

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/leaanthony/go-ansi-parser"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorUsageFunc(t *testing.T) {
	saved := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = saved }()

	root := &cobra.Command{Use: "ocrdiff"}
	root.PersistentFlags().String("config", "", "Configuration file")
	run := &cobra.Command{Use: "run IMAGE EXPECTED", Short: "Evaluate one image", Run: func(*cobra.Command, []string) {}}
	run.Flags().IntP("jobs", "j", 1, "Workers")
	root.AddCommand(run)

	var buf bytes.Buffer
	require.NoError(t, ColorUsageFunc(&buf, root))
	out := buf.String()
	assert.Contains(t, out, "Usage:\n  ocrdiff [command]")
	assert.Contains(t, out, "Available Commands:")
	assert.Contains(t, out, "run")
	assert.Contains(t, out, "Evaluate one image")

	buf.Reset()
	require.NoError(t, ColorUsageFunc(&buf, run))
	out = buf.String()
	assert.Contains(t, out, "ocrdiff run IMAGE EXPECTED [flags]")
	assert.Contains(t, out, "-j, --jobs int")
	assert.Contains(t, out, "Global Flags:")
	assert.Contains(t, out, "--config string")
}

func TestColorFlags(t *testing.T) {
	saved := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = saved }()

	out := string(colorFlags("  -j, --jobs int   Workers\n      --config string   File\nplain"))

	plain, err := ansi.Cleanse(out)
	require.NoError(t, err)
	assert.Equal(t, "  -j, --jobs int   Workers\n      --config string   File\nplain", plain)

	styled, err := ansi.Parse("  -j, --jobs int")
	require.NoError(t, err)
	assert.Len(t, styled, 1)

	styled, err = ansi.Parse(string(colorFlags("  -j, --jobs int")))
	require.NoError(t, err)
	var bold []string
	for _, el := range styled {
		if el.Bold() {
			bold = append(bold, el.Label)
		}
	}
	assert.Equal(t, []string{"-j", "--jobs"}, bold)
}
