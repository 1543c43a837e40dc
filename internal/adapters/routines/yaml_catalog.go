// Package routines loads the routine catalog: a yaml mapping from routine
// id to the ordered [node, trajectory-code] stops of that routine.
package routines

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"routine-planner-service/internal/domain"
	"routine-planner-service/internal/ports"
)

// Catalog is an immutable in-memory routine catalog.
type Catalog struct {
	routines map[int][]domain.Stop
}

// LoadCatalog reads a routines.yaml file of the form:
//
//	1:
//	  - [2, 0]
//	  - [5, 0]
//	2:
//	  - [5, 1]
//	  - [2, 0]
//
// A missing file wraps ports.ErrConfigurationMissing.
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("load routines %q: %w", path, ports.ErrConfigurationMissing)
		}
		return nil, fmt.Errorf("load routines %q: %w", path, err)
	}

	var parsed map[int][][]int
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("load routines %q: parse yaml: %w", path, err)
	}

	catalog := &Catalog{routines: make(map[int][]domain.Stop, len(parsed))}
	for id, rawStops := range parsed {
		if len(rawStops) < 2 {
			return nil, fmt.Errorf("load routines %q: routine %d has %d stops, need at least 2", path, id, len(rawStops))
		}

		stops := make([]domain.Stop, 0, len(rawStops))
		for i, pair := range rawStops {
			if len(pair) != 2 {
				return nil, fmt.Errorf("load routines %q: routine %d stop %d: want [node, code] pair, got %d values", path, id, i+1, len(pair))
			}
			stops = append(stops, domain.Stop{NodeID: pair[0], Code: pair[1]})
		}
		catalog.routines[id] = stops
	}

	return catalog, nil
}

// Routine returns the stops of a routine, or ok=false for unknown ids.
func (c *Catalog) Routine(id int) ([]domain.Stop, bool) {
	stops, ok := c.routines[id]
	return stops, ok
}

// IDs returns all routine ids in ascending order.
func (c *Catalog) IDs() []int {
	ids := make([]int, 0, len(c.routines))
	for id := range c.routines {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
