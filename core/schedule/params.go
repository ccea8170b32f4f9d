package schedule

import (
	"fmt"

	"github.com/gridsteel/steelflex/core/plant"
	"github.com/gridsteel/steelflex/core/series"
)

// parameters binds every scalar and indexed constant of the model: the plant
// configuration, the two input series and the derived step length in hours.
type parameters struct {
	cfg    plant.Config
	gen    series.Series
	price  series.Series
	deltaT float64 // hours per time step

	equipment map[string]plant.Equipment
	mode      map[VirtualKey]plant.Mode
}

func newParameters(cfg plant.Config, gen, price series.Series) (parameters, error) {
	if len(gen) != len(price) {
		return parameters{}, fmt.Errorf("generation series has %d steps, price series has %d",
			len(gen), len(price))
	}
	p := parameters{
		cfg:       cfg,
		gen:       gen,
		price:     price,
		deltaT:    cfg.MinutesPerStep / 60,
		equipment: make(map[string]plant.Equipment, len(cfg.Equipment)),
		mode:      make(map[VirtualKey]plant.Mode),
	}
	for _, e := range cfg.Equipment {
		p.equipment[e.ID] = e
		for _, v := range e.Modes {
			p.mode[VirtualKey{Equipment: e.ID, Mode: v.ID}] = v
		}
	}
	return p, nil
}

// initialH2MWh is the energy content of the hydrogen tank at the first step.
func (p parameters) initialH2MWh() float64 {
	return p.cfg.HydrogenTank.InitialFill * p.cfg.HydrogenTank.CapacityMWh
}
