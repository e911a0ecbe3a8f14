package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"periph.io/x/conn/v3/physic"
	"touchpanel.dev/board"
)

type TempCmd struct {
	Sensor   string        `help:"Thermal sensor name. Empty selects the first sensor." env:"TOUCH_TEMP_SENSOR"`
	Interval time.Duration `help:"Sampling interval." default:"1s"`
}

type envSensor interface {
	Sense(e *physic.Env) error
}

func (t *TempCmd) Run(c *Context) error {
	if t.Interval <= 0 {
		return errors.New("interval must be positive")
	}
	s, err := board.OpenThermal(t.Sensor)
	if err != nil {
		return err
	}
	ticker := time.NewTicker(t.Interval)
	defer ticker.Stop()
	return monitorTemp(os.Stdout, s, ticker.C, stopSignals())
}

// monitorTemp prints a reading on every tick until stop fires. Failed
// readings are logged and skipped.
func monitorTemp(w io.Writer, s envSensor, tick <-chan time.Time, stop <-chan os.Signal) error {
	for {
		select {
		case <-stop:
			return nil
		case <-tick:
		}
		var env physic.Env
		if err := s.Sense(&env); err != nil {
			log.Printf("temperature: %v", err)
			continue
		}
		if _, err := fmt.Fprintf(w, "temperature: %s\n", env.Temperature); err != nil {
			return err
		}
	}
}
