package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "geld terug", SanitizeText("<b>geld</b> terug"))
	assert.Equal(t, "Albert Heijn", SanitizeText("Albert Heijn"))
	assert.Equal(t, "", SanitizeText("<script>alert('x')</script>"))
	assert.Equal(t, "betaling", SanitizeText("  betaling \a"))
}

func TestStripUnprintable(t *testing.T) {
	assert.Equal(t, "abc", StripUnprintable("a\x00b\x7Fc"))
	assert.Equal(t, "a\tb\nc", StripUnprintable("a\tb\nc"))
}
