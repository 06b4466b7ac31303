package ranking

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapSeverity(t *testing.T) {
	cases := []struct {
		label string
		want  Severity
	}{
		{"mel", SeverityHigh},
		{"bcc", SeverityHigh},
		{"scc", SeverityHigh},
		{"akiec", SeverityModerate},
		{"bkl", SeverityLow},
		{"df", SeverityLow},
		{"nv", SeverityLow},
		{"vasc", SeverityLow},
	}
	for _, tc := range cases {
		sev, advice, err := MapSeverity(tc.label)
		require.NoError(t, err, tc.label)
		assert.Equal(t, tc.want, sev, tc.label)
		assert.NotEmpty(t, advice, tc.label)
	}
}

func TestMapSeverityUnknownLabel(t *testing.T) {
	_, _, err := MapSeverity("xyz")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownLabel))

	_, _, err = MapSeverity("")
	assert.True(t, errors.Is(err, ErrUnknownLabel))
}

func TestFullForm(t *testing.T) {
	name, err := FullForm("mel")
	require.NoError(t, err)
	assert.Equal(t, "Melanoma", name)

	name, err = FullForm("nv")
	require.NoError(t, err)
	assert.Equal(t, "Melanocytic Nevi", name)

	_, err = FullForm("not-a-label")
	assert.True(t, errors.Is(err, ErrUnknownLabel))
}

func TestIsSafe(t *testing.T) {
	assert.True(t, IsSafe(SeverityLow))
	assert.False(t, IsSafe(SeverityModerate))
	assert.False(t, IsSafe(SeverityHigh))
}

func TestParseSeverity(t *testing.T) {
	for _, s := range []string{"Low", "Moderate", "High"} {
		sev, ok := ParseSeverity(s)
		assert.True(t, ok, s)
		assert.Equal(t, Severity(s), sev)
	}

	_, ok := ParseSeverity("low")
	assert.False(t, ok, "severity is case sensitive")
	_, ok = ParseSeverity("")
	assert.False(t, ok)
}
