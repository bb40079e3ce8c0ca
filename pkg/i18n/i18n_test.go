package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeEmptyIncomingKeepsOriginal(t *testing.T) {
	current := map[string]string{"en": "a", "fr": "b"}

	merged := Merge(current, map[string]string{})

	assert.Equal(t, map[string]string{"en": "a", "fr": "b"}, merged)
}

func TestMergeOverwritesOnlySubmittedKeys(t *testing.T) {
	current := map[string]string{"en": "a", "fr": "b"}

	merged := Merge(current, map[string]string{"en": "x"})

	assert.Equal(t, map[string]string{"en": "x", "fr": "b"}, merged)
}

func TestMergeNilCurrent(t *testing.T) {
	merged := Merge(nil, map[string]string{"es": "hola"})

	assert.Equal(t, map[string]string{"es": "hola"}, merged)
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	current := map[string]string{"en": "a"}
	incoming := map[string]string{"en": "x"}

	Merge(current, incoming)

	assert.Equal(t, "a", current["en"])
}

func TestResolveOverrideWins(t *testing.T) {
	r := Resolve("en", "es", "Hola", map[string]string{"en": "Hello"})

	assert.True(t, r.OK)
	assert.Equal(t, "Hello", r.Text)
	assert.Equal(t, "en", r.Lang)
}

func TestResolveSourceLanguageUsesScalar(t *testing.T) {
	r := Resolve("es", "es", "Hola", map[string]string{"en": "Hello"})

	assert.True(t, r.OK)
	assert.Equal(t, "Hola", r.Text)
	assert.Equal(t, "es", r.Lang)
}

func TestResolveFallsBackToScalar(t *testing.T) {
	// No French override: scalar wins, tagged with its source language
	r := Resolve("fr", "es", "Hola", map[string]string{"en": "Hello"})

	assert.True(t, r.OK)
	assert.Equal(t, "Hola", r.Text)
	assert.Equal(t, "es", r.Lang)
}

func TestResolveSourceLanguageWithEmptyScalarFallsThrough(t *testing.T) {
	// An empty scalar never resolves, even for its own source language; the
	// override fallback applies instead
	r := Resolve("es", "es", "", map[string]string{"en": "Hello"})

	assert.True(t, r.OK)
	assert.Equal(t, "Hello", r.Text)
	assert.Equal(t, "en", r.Lang)
}

func TestResolveFallsBackToAnyOverride(t *testing.T) {
	r := Resolve("fr", "es", "", map[string]string{"en": "Hello"})

	assert.True(t, r.OK)
	assert.Equal(t, "Hello", r.Text)
	assert.Equal(t, "en", r.Lang)
}

func TestResolveNothingAvailable(t *testing.T) {
	r := Resolve("fr", "es", "", nil)

	assert.False(t, r.OK)
	assert.Empty(t, r.Text)
	assert.Empty(t, r.Lang)
}

func TestResolveNoRequestedLanguage(t *testing.T) {
	r := Resolve("", "es", "Hola", map[string]string{"en": "Hello"})

	assert.True(t, r.OK)
	assert.Equal(t, "Hola", r.Text)
	assert.Equal(t, "es", r.Lang)
}

func TestResolveEmptyOverrideIgnored(t *testing.T) {
	r := Resolve("en", "es", "Hola", map[string]string{"en": ""})

	assert.Equal(t, "Hola", r.Text)
	assert.Equal(t, "es", r.Lang)
}
