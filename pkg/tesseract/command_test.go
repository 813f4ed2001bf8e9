package tesseract

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTesseract writes a shell script standing in for the tesseract executable
func fakeTesseract(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}

	path := filepath.Join(t.TempDir(), "tesseract")
	script := "#!/bin/sh\n" + body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func testImage() image.Image {
	return image.NewGray(image.Rect(0, 0, 4, 4))
}

func TestNewRequest_Defaults(t *testing.T) {
	req := NewRequest(testImage(), "", DefaultPageSegMode)

	assert.Equal(t, DefaultLanguage, req.Language)
	assert.Equal(t, 6, req.PageSegMode)
	assert.Equal(t, EngineModeLSTM, req.EngineMode)
	assert.True(t, req.PreserveInterwordSpaces)
}

func TestCommand_Args(t *testing.T) {
	tests := []struct {
		name string
		cmd  *Command
		req  Request
		want []string
	}{
		{
			name: "defaults",
			cmd:  NewCommand("/usr/bin/tesseract"),
			req:  NewRequest(nil, "", DefaultPageSegMode),
			want: []string{"stdin", "stdout", "-l", "jpn+eng", "--psm", "6", "--oem", "1", "-c", "preserve_interword_spaces=1"},
		},
		{
			name: "tessdata and sparse text",
			cmd:  NewCommand("tesseract", WithTessdataPrefix("/opt/tessdata")),
			req:  Request{Language: "eng", PageSegMode: 11, EngineMode: 1},
			want: []string{"stdin", "stdout", "--tessdata-dir", "/opt/tessdata", "-l", "eng", "--psm", "11", "--oem", "1", "-c", "preserve_interword_spaces=0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cmd.Args(tt.req))
		})
	}
}

func TestNewCommand_DefaultPath(t *testing.T) {
	assert.Equal(t, DefaultCommandPath(), NewCommand("").Path())
}

func TestCommand_Recognize(t *testing.T) {
	path := fakeTesseract(t, `cat > /dev/null
echo "$@"`)

	text, err := NewCommand(path).Recognize(context.Background(), NewRequest(testImage(), "", DefaultPageSegMode))
	require.NoError(t, err)
	assert.Equal(t, "stdin stdout -l jpn+eng --psm 6 --oem 1 -c preserve_interword_spaces=1\n", text)
}

func TestCommand_RecognizeSendsPNG(t *testing.T) {
	path := fakeTesseract(t, "cat")

	text, err := NewCommand(path).Recognize(context.Background(), NewRequest(testImage(), "eng", 3))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "\x89PNG"))
}

func TestCommand_RecognizeFailure(t *testing.T) {
	path := fakeTesseract(t, `echo "Failed loading language 'xyz'" >&2
exit 1`)

	_, err := NewCommand(path).Recognize(context.Background(), NewRequest(testImage(), "xyz", 6))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed loading language 'xyz'")
}

func TestCommand_RecognizeMissingExecutable(t *testing.T) {
	cmd := NewCommand(filepath.Join(t.TempDir(), "no-such-tesseract"))
	_, err := cmd.Recognize(context.Background(), NewRequest(testImage(), "", 6))
	assert.Error(t, err)
}

func TestEncodeImage_Nil(t *testing.T) {
	_, err := EncodeImage(nil)
	assert.Error(t, err)
}
