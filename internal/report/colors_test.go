package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	withColor(t, true)

	green, err := ParseColor("Green")
	require.NoError(t, err)
	assert.Equal(t, color.New(color.FgGreen).Sprint("foo"), green.Sprint("foo"))

	rgb, err := ParseColor("#1b1cbf")
	require.NoError(t, err)
	assert.Equal(t, "\x1b[38;2;27;28;191mfoo\x1b[0m", rgb.Sprint("foo"))

	for _, bad := range []string{"wat", "#1b1cbj", "1b1cbf", ""} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseColor_NoColor(t *testing.T) {
	withColor(t, false)

	for _, name := range []string{"red", "#ffffff"} {
		c, err := ParseColor(name)
		require.NoError(t, err)
		assert.Equal(t, "foo", c.Sprint("foo"))
	}
}

func TestNewStyles(t *testing.T) {
	_, err := NewStyles("green", "red", "yellow")
	assert.NoError(t, err)

	_, err = NewStyles("green", "nope", "yellow")
	assert.ErrorContains(t, err, "removed")
}

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		in      string
		want    ColorMode
		wantErr bool
	}{
		{in: "", want: ColorAuto},
		{in: "auto", want: ColorAuto},
		{in: "ALWAYS", want: ColorAlways},
		{in: "never", want: ColorNever},
		{in: "sometimes", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColorMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColorMode_Enabled(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer f.Close()

	assert.True(t, ColorAlways.Enabled(f))
	assert.False(t, ColorNever.Enabled(f))
	assert.False(t, ColorAuto.Enabled(f))
	assert.False(t, ColorAuto.Enabled(nil))

	t.Setenv("NO_COLOR", "1")
	assert.True(t, ColorAlways.Enabled(f))

	saved := color.NoColor
	defer func() { color.NoColor = saved }()
	ColorAlways.Apply(f)
	assert.False(t, color.NoColor)
	ColorNever.Apply(f)
	assert.True(t, color.NoColor)
}
