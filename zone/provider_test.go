package zone

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func fixedZones(ids ...string) []*Zone {
	zones := make([]*Zone, len(ids))
	for i, id := range ids {
		zones[i] = New(id, NewSingleIntervalMap(Interval{Name: id}))
	}
	return zones
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(fixedZones("Europe/Berlin", "America/New_York", "Etc/GMT-1")...)
	if err != nil {
		t.Fatalf("NewProvider() failed: %v", err)
	}

	want := []string{"America/New_York", "Etc/GMT-1", "Europe/Berlin"}
	if diff := cmp.Diff(p.IDs(), want); diff != "" {
		t.Errorf("IDs() mismatch (-got +want):\n%s", diff)
	}

	z, err := p.Resolve("Etc/GMT-1")
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if z.ID() != "Etc/GMT-1" {
		t.Errorf("Resolve() = %q, want %q", z.ID(), "Etc/GMT-1")
	}

	if _, err := p.Resolve("Atlantis/Capital"); !errors.Is(err, ErrZone) {
		t.Errorf("Resolve() error = %v, want ErrZone", err)
	}
}

func TestNewProviderRejects(t *testing.T) {
	cases := []struct {
		name string
		ids  []string
	}{
		{"duplicate", []string{"Europe/Berlin", "Europe/Berlin"}},
		{"empty_id", []string{""}},
		{"leading_digit", []string{"8th/Continent"}},
		{"embedded_space", []string{"Bad Zone"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewProvider(fixedZones(tc.ids...)...); !errors.Is(err, ErrZone) {
				t.Errorf("NewProvider() error = %v, want ErrZone", err)
			}
		})
	}
}
