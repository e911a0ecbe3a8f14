package board

import (
	"errors"
	"fmt"

	"periph.io/x/host/v3"
	"periph.io/x/host/v3/sysfs"
)

// OpenThermal returns the named sysfs thermal sensor, or the first one found
// if name is empty.
func OpenThermal(name string) (*sysfs.ThermalSensor, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("board: %w", err)
	}
	if name == "" {
		if len(sysfs.ThermalSensors) == 0 {
			return nil, errors.New("board: no thermal sensor")
		}
		name = sysfs.ThermalSensors[0].String()
	}
	t, err := sysfs.ThermalSensorByName(name)
	if err != nil {
		return nil, fmt.Errorf("board: thermal %s: %w", name, err)
	}
	return t, nil
}
