package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ScenarioEntity is a non-hero entity placed on the map at start.
type ScenarioEntity struct {
	UID  uint32 `yaml:"uid"`
	Name string `yaml:"name"`
	Kind int32  `yaml:"kind"`
	X    int32  `yaml:"x"`
	Y    int32  `yaml:"y"`
}

// ScenarioItem is an item lying on the ground at start.
type ScenarioItem struct {
	ID     int32  `yaml:"id"`
	ItemID int32  `yaml:"item_id"`
	Name   string `yaml:"name"`
	X      int32  `yaml:"x"`
	Y      int32  `yaml:"y"`
}

// ScenarioStep is one command issued to the hero at a given tick.
// Action: move | attack | pickup | spell | mount | dismount
type ScenarioStep struct {
	AtTick int    `yaml:"at_tick"`
	Action string `yaml:"action"`
	X      int32  `yaml:"x"`
	Y      int32  `yaml:"y"`
	Target uint32 `yaml:"target"`
	Param  int32  `yaml:"param"`
	Speed  int32  `yaml:"speed"`
}

// Scenario drives the herosim binary.
type Scenario struct {
	Name     string           `yaml:"name"`
	Entities []ScenarioEntity `yaml:"entities"`
	Items    []ScenarioItem   `yaml:"items"`
	Steps    []ScenarioStep   `yaml:"steps"`
	MaxTicks int              `yaml:"max_ticks"`
}

var scenarioActions = map[string]bool{
	"move": true, "attack": true, "pickup": true, "spell": true,
	"mount": true, "dismount": true,
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	for i, st := range sc.Steps {
		if !scenarioActions[st.Action] {
			return nil, fmt.Errorf("scenario step %d: unknown action %q", i, st.Action)
		}
		if i > 0 && st.AtTick < sc.Steps[i-1].AtTick {
			return nil, fmt.Errorf("scenario step %d: at_tick %d goes backwards", i, st.AtTick)
		}
	}
	if sc.MaxTicks <= 0 {
		sc.MaxTicks = 200
	}
	return &sc, nil
}
