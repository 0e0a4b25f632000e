package zone

import (
	"fmt"
	"slices"

	"github.com/smasher164/xid"
)

// Provider holds a read-only table of zones, keyed by identifier. Its
// identifier table is sorted by ordinal (byte-wise) comparison, the
// precondition for the binary searches parsers run against it.
type Provider struct {
	ids   []string
	zones map[string]*Zone
}

// NewProvider creates and returns a new Provider for zones. Returns an error
// wrapping ErrZone for duplicate or malformed zone identifiers.
func NewProvider(zones ...*Zone) (*Provider, error) {
	p := &Provider{
		ids:   make([]string, 0, len(zones)),
		zones: make(map[string]*Zone, len(zones)),
	}
	for _, z := range zones {
		if !validID(z.ID()) {
			return nil, fmt.Errorf("%w: malformed zone id %q", ErrZone, z.ID())
		}
		if _, ok := p.zones[z.ID()]; ok {
			return nil, fmt.Errorf("%w: duplicate zone id %q", ErrZone, z.ID())
		}
		p.zones[z.ID()] = z
		p.ids = append(p.ids, z.ID())
	}
	slices.Sort(p.ids)
	return p, nil
}

// IDs returns the provider's zone identifiers, sorted by ordinal comparison.
// Callers must not modify the returned slice.
func (p *Provider) IDs() []string { return p.ids }

// Resolve returns the zone identified by id. Returns an error wrapping
// ErrZone if the provider has no such zone.
func (p *Provider) Resolve(id string) (*Zone, error) {
	z, ok := p.zones[id]
	if !ok {
		return nil, fmt.Errorf("%w: unknown zone id %q", ErrZone, id)
	}
	return z, nil
}

// validID reports whether id is a well-formed zone identifier: a Unicode
// identifier-start rune followed by identifier-continue runes and the
// punctuation tz identifiers use.
func validID(id string) bool {
	if id == "" {
		return false
	}
	for i, r := range id {
		if i == 0 {
			if !xid.Start(r) {
				return false
			}
			continue
		}
		switch r {
		case '/', '-', '+', '_', '.', ':':
			continue
		}
		if !xid.Continue(r) {
			return false
		}
	}
	return true
}
