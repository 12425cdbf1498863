package textx_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jobwave/matchengine/pkg/textx"
)

func TestSanitize_StripsControlChars(t *testing.T) {
	t.Parallel()
	in := "hello\x00 world\x07\n\tok"
	out := textx.Sanitize(in)
	assert.Equal(t, "hello world\n\tok", out)
}

func TestSanitize_TrimsSpace(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "abc", textx.Sanitize("  abc  "))
}

func TestTruncate(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "abc", textx.Truncate("abc", 10))
	assert.Equal(t, "ab", textx.Truncate("abc", 2))
	assert.Equal(t, "", textx.Truncate("abc", 0))
	// rune-safe: multi-byte characters are not split
	assert.Equal(t, "héll", textx.Truncate("héllo", 4))
	long := strings.Repeat("x", 1000)
	assert.Len(t, textx.Truncate(long, 500), 500)
}

func TestCollapseSpaces(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "a b c", textx.CollapseSpaces("a\t b\n\n c"))
}
