package media

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupByDomain(t *testing.T) {
	r := NewRegistry()

	info := r.Lookup("reuters.com", "")

	assert.Equal(t, "Reuters", info.Name)
	assert.Equal(t, "agency", info.Type)
	assert.Equal(t, "GB", info.Country)
}

func TestLookupByName(t *testing.T) {
	r := NewRegistry()

	info := r.Lookup("BBC", "")

	assert.Equal(t, "BBC", info.Name)
	assert.Equal(t, "broadcaster", info.Type)
}

func TestLookupSubdomainResolvesViaSuffix(t *testing.T) {
	r := NewRegistry()

	info := r.Lookup("edition.cnn.com", "")

	assert.Equal(t, "CNN", info.Name)
}

func TestLookupPartialNameUsesCountryHint(t *testing.T) {
	r := NewRegistry()

	// "korea herald" should not match a non-KR outlet when the hint is set.
	info := r.Lookup("korea herald", "KR")

	assert.Equal(t, "The Korea Herald", info.Name)
	assert.Equal(t, "KR", info.Country)
}

func TestLookupUnknownReturnsSentinel(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name   string
		source string
	}{
		{name: "unregistered domain", source: "totally-unknown-blog.example"},
		{name: "empty source", source: ""},
		{name: "whitespace source", source: "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, UnknownInfo, r.Lookup(tt.source, ""))
		})
	}
}

func TestLookupCaseInsensitive(t *testing.T) {
	r := NewRegistry()

	assert.Equal(t, r.Lookup("reuters.com", ""), r.Lookup("REUTERS.COM", ""))
}

func TestAllSortedByName(t *testing.T) {
	r := NewRegistry()

	all := r.All()

	require.Equal(t, r.Size(), len(all))
	names := make([]string, len(all))
	for i, info := range all {
		names[i] = info.Name
	}
	assert.True(t, sort.StringsAreSorted(names))
}

func TestNewRegistryFromFileLayersOverDefaults(t *testing.T) {
	content := `outlets:
  - name: "Sample Wire"
    country: "SE"
    type: "agency"
    category: "commercial"
    credibility: 70
    bias: "center"
    domains:
      - "samplewire.se"
  - name: "Reuters"
    country: "GB"
    type: "agency"
    category: "commercial"
    credibility: 95
    bias: "center"
    domains:
      - "reuters.com"
`
	path := filepath.Join(t.TempDir(), "registry.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	r, err := NewRegistryFromFile(path)
	require.NoError(t, err)

	// New outlets are added, named collisions override the defaults, and the
	// untouched defaults survive.
	assert.Equal(t, "Sample Wire", r.Lookup("samplewire.se", "").Name)
	assert.Equal(t, 95, r.Lookup("reuters.com", "").Credibility)
	assert.Equal(t, "BBC", r.Lookup("bbc.co.uk", "").Name)
}

func TestNewRegistryFromFileMissing(t *testing.T) {
	_, err := NewRegistryFromFile(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Error(t, err)
}
