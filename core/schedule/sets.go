// Package schedule constructs the mixed-integer linear program that
// co-optimizes flexible batch steelmaking with on-site renewables, hydrogen
// production and storage, and grid power exchange. Build derives the index
// domains from the plant configuration and the series horizon, allocates
// every decision and derived variable, assembles the constraint families and
// attaches the selected objective; the result is one immutable model ready
// for a solver.
//
// The batch modelling follows the virtual-equipment approach of
// Liu & Gao, 2022 (doi: 10.1049/gtd2.12559): each operating mode of a
// physical equipment is a virtual equipment with its own load profile, and a
// batch is represented only by the binary turn-on decision at its start step.
package schedule

import (
	"fmt"

	"github.com/gridsteel/steelflex/core/plant"
)

// VirtualKey identifies one virtual equipment: an operating mode of a
// physical equipment.
type VirtualKey struct {
	Equipment string
	Mode      string
}

func (k VirtualKey) String() string { return k.Equipment + "," + k.Mode }

// Sets are the index domains of the model: the time horizon, the equipment
// and virtual-equipment identifiers, and the batch-step count per virtual
// equipment derived from its load-profile length.
type Sets struct {
	// Horizon is the number of time steps N; steps are indexed 0..N-1.
	Horizon int
	// Equipment lists the equipment identifiers in configuration order.
	Equipment []string
	// Virtual lists all (equipment, mode) pairs in configuration order.
	Virtual []VirtualKey
	// BatchSteps is the batch duration per virtual equipment.
	BatchSteps map[VirtualKey]int
}

// VirtualOf returns the virtual equipments of one equipment, in order.
func (s Sets) VirtualOf(equipment string) []VirtualKey {
	var keys []VirtualKey
	for _, k := range s.Virtual {
		if k.Equipment == equipment {
			keys = append(keys, k)
		}
	}
	return keys
}

// newSets derives the index domains. The horizon is the length of the
// generation series; batch-step ranges come from the batch load profiles.
// Missing or malformed profile data for a declared mode is an error.
func newSets(cfg plant.Config, horizon int) (Sets, error) {
	if horizon <= 0 {
		return Sets{}, fmt.Errorf("horizon must be positive, got %d", horizon)
	}
	s := Sets{
		Horizon:    horizon,
		BatchSteps: make(map[VirtualKey]int),
	}
	for _, e := range cfg.Equipment {
		s.Equipment = append(s.Equipment, e.ID)
		for _, v := range e.Modes {
			key := VirtualKey{Equipment: e.ID, Mode: v.ID}
			if len(v.LoadProfileMW) == 0 {
				return Sets{}, fmt.Errorf("virtual equipment %s: batch load profile is missing", key)
			}
			if v.DurationSteps != 0 && v.DurationSteps != len(v.LoadProfileMW) {
				return Sets{}, fmt.Errorf("virtual equipment %s: declared duration %d does not match profile length %d",
					key, v.DurationSteps, len(v.LoadProfileMW))
			}
			s.Virtual = append(s.Virtual, key)
			s.BatchSteps[key] = len(v.LoadProfileMW)
		}
	}
	return s, nil
}
