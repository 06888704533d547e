// Package spawn defines the map spawn layout: one fixed killer point and a
// rotation of survivor points. Layouts can be overridden by a YAML content
// file; the built-in layout matches the shipped map.
package spawn

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/campblood/server/internal/protocol"
)

// Layout is a full spawn configuration.
type Layout struct {
	// Killer is the fixed killer spawn point.
	Killer protocol.SpawnPoint `yaml:"killer"`
	// Survivors are assigned round-robin, in join order among survivors.
	Survivors []protocol.SpawnPoint `yaml:"survivors"`
}

// DefaultLayout returns the built-in layout: killer at the far edge,
// five well-spread survivor points.
func DefaultLayout() Layout {
	return Layout{
		Killer: protocol.SpawnPoint{X: 0, Z: 40},
		Survivors: []protocol.SpawnPoint{
			{X: 0, Z: 0},
			{X: 15, Z: 10},
			{X: -15, Z: 10},
			{X: 8, Z: -18},
			{X: -8, Z: -18},
		},
	}
}

// Load reads a Layout from a YAML file.
//
// Precondition: path must reference a readable YAML file.
// Postcondition: Returns a validated Layout or a non-nil error.
func Load(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("reading spawn layout: %w", err)
	}
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("parsing spawn layout %s: %w", path, err)
	}
	if err := l.Validate(); err != nil {
		return Layout{}, fmt.Errorf("spawn layout %s: %w", path, err)
	}
	return l, nil
}

// Validate checks layout invariants.
//
// Postcondition: Returns nil when the layout has at least one survivor point.
func (l Layout) Validate() error {
	if len(l.Survivors) == 0 {
		return fmt.Errorf("layout must define at least one survivor point")
	}
	return nil
}

// Assign maps each player id to its spawn point: the killer gets the fixed
// killer point, survivors rotate through the survivor points in the order
// given.
//
// Precondition: order is the roster in join order; killerID is a member of
// order.
// Postcondition: Every id in order has an entry in the returned map.
func (l Layout) Assign(order []string, killerID string) map[string]protocol.SpawnPoint {
	spawns := make(map[string]protocol.SpawnPoint, len(order))
	survivorIdx := 0
	for _, id := range order {
		if id == killerID {
			spawns[id] = l.Killer
			continue
		}
		spawns[id] = l.Survivors[survivorIdx%len(l.Survivors)]
		survivorIdx++
	}
	return spawns
}
