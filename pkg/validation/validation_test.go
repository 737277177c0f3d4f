package validation

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"clip.mov":              "clip.mov",
		"my video (final).mp4":  "my_video__final_.mp4",
		"../../etc/passwd":      "passwd",
		"C:\\Users\\me\\a.webm": "a.webm",
		"ümlaut café.mp4":       "_mlaut_caf_.mp4",
		"  spaced.mov  ":        "spaced.mov",
		"no-ext":                "no-ext",
	}
	for in, want := range cases {
		assert.Equal(t, want, SanitizeFilename(in), "input %q", in)
	}
}

func TestSanitizeFilenameOutputAlphabet(t *testing.T) {
	safe := regexp.MustCompile(`^[A-Za-z0-9._-]*$`)
	inputs := []string{"a b/c\\d.mp4", "漢字.mov", "\x00\x01.webm", "no rm -rf ~;.mp4"}
	for _, in := range inputs {
		assert.Regexp(t, safe, SanitizeFilename(in))
	}
}

func TestValidateSlug(t *testing.T) {
	assert.True(t, ValidateSlug("acme"))
	assert.True(t, ValidateSlug("acme-corp-2"))
	assert.False(t, ValidateSlug("Acme"))
	assert.False(t, ValidateSlug("-acme"))
	assert.False(t, ValidateSlug("acme-"))
	assert.False(t, ValidateSlug(""))
	assert.False(t, ValidateSlug("a/b"))
}

func TestValidatePartNumber(t *testing.T) {
	assert.False(t, ValidatePartNumber(0))
	assert.True(t, ValidatePartNumber(1))
	assert.True(t, ValidatePartNumber(10000))
	assert.False(t, ValidatePartNumber(10001))
	assert.False(t, ValidatePartNumber(-3))
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("jane@example.com"))
	assert.False(t, ValidateEmail("jane@"))
	assert.False(t, ValidateEmail("not-an-email"))
}
