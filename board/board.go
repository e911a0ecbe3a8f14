// Package board brings up the touch panel board: the I²C bus of the touch
// controller, the display reset line, the backlight and the touch
// interrupt line.
package board

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
	"touchpanel.dev/driver/axs5106l"
)

// Config describes how the panel is wired. Pin names are looked up in the
// periph GPIO registry; an empty name means the line is not connected.
type Config struct {
	// I2CBus is the name of the bus; empty selects the first bus.
	I2CBus       string
	InterruptPin string
	ResetPin     string
	BacklightPin string

	Backlight     gpio.Duty
	BacklightFreq physic.Frequency

	Width    uint16
	Height   uint16
	Rotation axs5106l.Rotation
	StrictID bool
}

// Defaults for the 1.47" 172x320 ST7789 panel.
const (
	Width            = 172
	Height           = 320
	DefaultBacklight = gpio.DutyMax * 80 / 100
	DefaultFrequency = 1 * physic.KiloHertz
)

type Board struct {
	Touch *axs5106l.Device

	bus  i2c.BusCloser
	intr gpio.PinIn
}

const resetDelay = 50 * time.Millisecond

// Open initializes the host drivers and brings up the panel. On failure the
// backlight is left off; the reset and interrupt lines keep their levels.
func Open(conf Config) (*Board, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("board: %w", err)
	}
	return open(conf, time.Sleep)
}

func open(conf Config, sleep func(time.Duration)) (*Board, error) {
	intr, err := lookupPin(conf.InterruptPin)
	if err != nil {
		return nil, err
	}
	rst, err := lookupPin(conf.ResetPin)
	if err != nil {
		return nil, err
	}
	bl, err := lookupPin(conf.BacklightPin)
	if err != nil {
		return nil, err
	}
	if rst != nil {
		if err := ResetDisplay(rst, sleep); err != nil {
			return nil, fmt.Errorf("board: reset: %w", err)
		}
	}
	if bl != nil {
		freq := conf.BacklightFreq
		if freq == 0 {
			freq = DefaultFrequency
		}
		if err := SetBacklight(bl, conf.Backlight, freq); err != nil {
			return nil, fmt.Errorf("board: backlight: %w", err)
		}
	}
	// Turn the backlight off again if the touch controller does not come up.
	fail := func(err error) (*Board, error) {
		if bl != nil {
			bl.Out(gpio.Low)
		}
		return nil, err
	}
	if intr != nil {
		if err := intr.In(gpio.PullUp, gpio.NoEdge); err != nil {
			return fail(fmt.Errorf("board: interrupt: %w", err))
		}
	}
	bus, err := i2creg.Open(conf.I2CBus)
	if err != nil {
		return fail(fmt.Errorf("board: %w", err))
	}
	b := &Board{
		bus:  bus,
		intr: intr,
		Touch: axs5106l.New(bus, axs5106l.Config{
			Rotation: conf.Rotation,
			Width:    conf.Width,
			Height:   conf.Height,
			StrictID: conf.StrictID,
		}),
	}
	if err := b.Touch.Init(); err != nil {
		bus.Close()
		return fail(fmt.Errorf("board: touch: %w", err))
	}
	return b, nil
}

func lookupPin(name string) (gpio.PinIO, error) {
	if name == "" {
		return nil, nil
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("board: no such pin: %s", name)
	}
	return p, nil
}

// Interrupt returns the touch interrupt line, or nil if it is not
// connected.
func (b *Board) Interrupt() gpio.PinIn {
	return b.intr
}

func (b *Board) Close() error {
	if b.bus == nil {
		return errors.New("board: already closed")
	}
	err := b.bus.Close()
	b.bus = nil
	return err
}

// ResetDisplay pulses the active low display reset line.
func ResetDisplay(rst gpio.PinOut, sleep func(time.Duration)) error {
	if err := rst.Out(gpio.Low); err != nil {
		return err
	}
	sleep(resetDelay)
	if err := rst.Out(gpio.High); err != nil {
		return err
	}
	sleep(resetDelay)
	return nil
}

// SetBacklight drives the backlight with the given PWM duty cycle. A zero
// duty turns the backlight off.
func SetBacklight(bl gpio.PinOut, duty gpio.Duty, f physic.Frequency) error {
	if !duty.Valid() {
		return fmt.Errorf("invalid duty %d", duty)
	}
	switch duty {
	case 0:
		return bl.Out(gpio.Low)
	case gpio.DutyMax:
		return bl.Out(gpio.High)
	}
	return bl.PWM(duty, f)
}
