package motion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "motion.conf", `# motion.conf
; also a comment

videodevice /dev/video0
text_left   CAM  %D   changed
camera /etc/motion/cam1.conf
width 640
camera /etc/motion/cam2.conf
width 800
	threshold 2000  
`)

	c, err := Load(p, nil)
	require.NoError(t, err)

	assert.Equal(t, p, c.Path())
	assert.Nil(t, c.Parent())
	assert.Equal(t, []string{"/etc/motion/cam1.conf", "/etc/motion/cam2.conf"}, c.Includes())
	assert.Equal(t, map[string]string{
		"videodevice": "/dev/video0",
		"text_left":   "CAM %D changed",
		"width":       "800",
		"threshold":   "2000",
	}, c.Values())
	assert.False(t, c.Has("camera"))
}

func TestLoadCRLF(t *testing.T) {
	p := writeFile(t, t.TempDir(), "motion.conf", "width 640\r\n# c\r\nheight 480\r\n")

	c, err := Load(p, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"width": "640", "height": "480"}, c.Values())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.conf"), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFileNotFound))
	assert.Contains(t, err.Error(), "nope.conf")
}

func TestLoadBareDirective(t *testing.T) {
	p := writeFile(t, t.TempDir(), "motion.conf", "width 640\nnetcam_url\n")

	_, err := Load(p, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedLine))
	assert.Contains(t, err.Error(), "motion.conf:2")
	assert.Contains(t, err.Error(), `"netcam_url"`)
}

func TestLoadEveryLineContributesOnce(t *testing.T) {
	p := writeFile(t, t.TempDir(), "motion.conf", `camera a.conf
a 1
b 2
camera b.conf
c 3
`)

	c, err := Load(p, nil)
	require.NoError(t, err)
	assert.Len(t, c.Includes(), 2)
	assert.Len(t, c.Keys(), 3)
}
