// Package media maintains a registry of news outlets with country, type, and
// credibility metadata.
package media

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/soundprediction/globescope/pkg/types"
)

// UnknownInfo is the sentinel returned when no outlet matches. Lookups never
// fail; an unmatched source is simply unclassified.
var UnknownInfo = types.MediaInfo{
	Name:        "Unknown",
	Country:     "Unknown",
	Type:        "unknown",
	Category:    "unknown",
	Credibility: 50,
}

// Registry maps outlet names and domains to their metadata. It is loaded
// once and read concurrently afterwards.
type Registry struct {
	mu       sync.RWMutex
	byDomain map[string]types.MediaInfo
	byName   map[string]types.MediaInfo
}

// registryFile is the YAML shape: a flat list of outlet records with their
// domains.
type registryFile struct {
	Outlets []outletRecord `yaml:"outlets"`
}

type outletRecord struct {
	types.MediaInfo `yaml:",inline"`
	Domains         []string `yaml:"domains"`
}

// NewRegistry builds a registry from the embedded default outlet set.
func NewRegistry() *Registry {
	r := &Registry{
		byDomain: make(map[string]types.MediaInfo),
		byName:   make(map[string]types.MediaInfo),
	}
	r.addAll(defaultOutlets)
	return r
}

// NewRegistryFromFile loads outlet records from a YAML file, layered on top
// of the embedded defaults so a partial file only overrides what it names.
func NewRegistryFromFile(path string) (*Registry, error) {
	r := NewRegistry()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read media registry: %w", err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse media registry: %w", err)
	}

	r.addAll(file.Outlets)
	return r, nil
}

func (r *Registry) addAll(outlets []outletRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range outlets {
		r.byName[strings.ToLower(o.Name)] = o.MediaInfo
		for _, d := range o.Domains {
			r.byDomain[strings.ToLower(d)] = o.MediaInfo
		}
	}
}

// Lookup resolves a source name or domain to outlet metadata. The country
// hint breaks ties when a bare name matches outlets in several countries in
// future data; today it only narrows partial-name matches. Unmatched sources
// return the UnknownInfo sentinel.
func (r *Registry) Lookup(sourceNameOrDomain, countryHint string) types.MediaInfo {
	key := strings.ToLower(strings.TrimSpace(sourceNameOrDomain))
	if key == "" {
		return UnknownInfo
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if info, ok := r.byDomain[key]; ok {
		return info
	}
	if info, ok := r.byName[key]; ok {
		return info
	}

	// Partial domain match: "edition.cnn.com" should resolve via "cnn.com".
	for domain, info := range r.byDomain {
		if strings.HasSuffix(key, domain) {
			return info
		}
	}

	// Partial name match, narrowed by the country hint when present.
	hint := strings.ToUpper(strings.TrimSpace(countryHint))
	for name, info := range r.byName {
		if !strings.Contains(key, name) && !strings.Contains(name, key) {
			continue
		}
		if hint != "" && info.Country != hint {
			continue
		}
		return info
	}

	return UnknownInfo
}

// All returns every registered outlet sorted by name.
func (r *Registry) All() []types.MediaInfo {
	r.mu.RLock()
	outlets := make([]types.MediaInfo, 0, len(r.byName))
	for _, info := range r.byName {
		outlets = append(outlets, info)
	}
	r.mu.RUnlock()

	sort.Slice(outlets, func(i, j int) bool { return outlets[i].Name < outlets[j].Name })
	return outlets
}

// Size returns the number of distinct outlets registered by name.
func (r *Registry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byName)
}
