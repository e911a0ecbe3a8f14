package board

import (
	"errors"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/i2c/i2ctest"
	"periph.io/x/conn/v3/physic"
	"touchpanel.dev/driver/axs5106l"
)

// recPin records the levels driven on it.
type recPin struct {
	gpio.PinOut
	levels []gpio.Level
	duty   gpio.Duty
	freq   physic.Frequency
	err    error
}

func (p *recPin) Out(l gpio.Level) error {
	p.levels = append(p.levels, l)
	return p.err
}

func (p *recPin) PWM(d gpio.Duty, f physic.Frequency) error {
	p.duty, p.freq = d, f
	return p.err
}

func TestResetDisplay(t *testing.T) {
	c := qt.New(t)
	p := new(recPin)
	var slept []time.Duration
	err := ResetDisplay(p, func(d time.Duration) { slept = append(slept, d) })
	c.Assert(err, qt.IsNil)
	c.Assert(p.levels, qt.DeepEquals, []gpio.Level{gpio.Low, gpio.High})
	c.Assert(slept, qt.DeepEquals, []time.Duration{resetDelay, resetDelay})
}

func TestResetDisplayError(t *testing.T) {
	c := qt.New(t)
	p := &recPin{err: errors.New("pin busy")}
	err := ResetDisplay(p, func(time.Duration) {})
	c.Assert(err, qt.ErrorMatches, "pin busy")
	c.Assert(p.levels, qt.HasLen, 1)
}

func TestSetBacklight(t *testing.T) {
	c := qt.New(t)

	p := new(recPin)
	c.Assert(SetBacklight(p, DefaultBacklight, DefaultFrequency), qt.IsNil)
	c.Assert(p.duty, qt.Equals, DefaultBacklight)
	c.Assert(p.freq, qt.Equals, physic.KiloHertz)
	c.Assert(p.duty.String(), qt.Equals, "80%")

	p = new(recPin)
	c.Assert(SetBacklight(p, 0, DefaultFrequency), qt.IsNil)
	c.Assert(p.levels, qt.DeepEquals, []gpio.Level{gpio.Low})

	p = new(recPin)
	c.Assert(SetBacklight(p, gpio.DutyMax, DefaultFrequency), qt.IsNil)
	c.Assert(p.levels, qt.DeepEquals, []gpio.Level{gpio.High})

	c.Assert(SetBacklight(new(recPin), gpio.DutyMax+1, DefaultFrequency), qt.IsNotNil)
}

func registerBus(c *qt.C, name string, ops ...i2ctest.IO) *i2ctest.Playback {
	bus := &i2ctest.Playback{Ops: ops, DontPanic: true}
	err := i2creg.Register(name, nil, -1, func() (i2c.BusCloser, error) {
		return bus, nil
	})
	c.Assert(err, qt.IsNil)
	c.Cleanup(func() { i2creg.Unregister(name) })
	return bus
}

func registerPin(c *qt.C, p gpio.PinIO) {
	c.Assert(gpioreg.Register(p), qt.IsNil)
	c.Cleanup(func() { gpioreg.Unregister(p.Name()) })
}

func TestOpen(t *testing.T) {
	c := qt.New(t)
	bus := registerBus(c, "TOUCHTEST",
		i2ctest.IO{Addr: 0x63, W: []byte{0x08}, R: []byte{0x51, 0x06, 0x01}},
		i2ctest.IO{Addr: 0x63, W: []byte{0x01}, R: []byte{0, 1, 0x00, 0x0a, 0x00, 0x14, 0, 0, 0, 0, 0, 0, 0, 0}},
	)
	intr := &gpiotest.Pin{N: "TOUCH_INT", L: gpio.Low}
	rst := &gpiotest.Pin{N: "TOUCH_RST"}
	bl := &gpiotest.Pin{N: "TOUCH_BL"}
	for _, p := range []*gpiotest.Pin{intr, rst, bl} {
		registerPin(c, p)
	}

	b, err := open(Config{
		I2CBus:       "TOUCHTEST",
		InterruptPin: "TOUCH_INT",
		ResetPin:     "TOUCH_RST",
		BacklightPin: "TOUCH_BL",
		Backlight:    DefaultBacklight,
		Width:        Width,
		Height:       Height,
		Rotation:     axs5106l.Rotate90,
	}, func(time.Duration) {})
	c.Assert(err, qt.IsNil)

	c.Assert(rst.L, qt.Equals, gpio.High)
	c.Assert(bl.D, qt.Equals, DefaultBacklight)
	c.Assert(bl.F, qt.Equals, DefaultFrequency)
	c.Assert(intr.P, qt.Equals, gpio.PullUp)
	c.Assert(b.Touch.ID(), qt.Equals, [3]byte{0x51, 0x06, 0x01})

	// Pull-up configuration raised the fake line; assert it again.
	intr.Out(gpio.Low)
	c.Assert(b.Touch.PollInterrupt(b.Interrupt()), qt.IsTrue)
	c.Assert(b.Touch.ReadTouch(), qt.IsNil)
	td, ok := b.Touch.Coordinates()
	c.Assert(ok, qt.IsTrue)
	c.Assert(td.Active(), qt.DeepEquals, []axs5106l.Coordinates{{X: 20, Y: 10}})

	c.Assert(b.Close(), qt.IsNil)
	c.Assert(bus.Count, qt.Equals, 2)
	c.Assert(b.Close(), qt.IsNotNil)
}

func TestOpenUnknownPin(t *testing.T) {
	c := qt.New(t)
	_, err := open(Config{ResetPin: "NO_SUCH_PIN"}, func(time.Duration) {})
	c.Assert(err, qt.ErrorMatches, "board: no such pin: NO_SUCH_PIN")
}

func TestOpenStrictID(t *testing.T) {
	c := qt.New(t)
	bus := registerBus(c, "TOUCHSTRICT",
		i2ctest.IO{Addr: 0x63, W: []byte{0x08}, R: []byte{0, 0, 0}},
	)
	bl := &gpiotest.Pin{N: "TOUCH_BL", L: gpio.High}
	registerPin(c, bl)
	_, err := open(Config{
		I2CBus:       "TOUCHSTRICT",
		BacklightPin: "TOUCH_BL",
		Backlight:    DefaultBacklight,
		StrictID:     true,
	}, func(time.Duration) {})
	c.Assert(errors.Is(err, axs5106l.ErrNoDevice), qt.IsTrue)
	c.Assert(bl.D, qt.Equals, DefaultBacklight)
	c.Assert(bl.L, qt.Equals, gpio.Low)
	c.Assert(bus.Count, qt.Equals, 1)
}

func TestOpenNoBus(t *testing.T) {
	c := qt.New(t)
	bl := &gpiotest.Pin{N: "TOUCH_BL", L: gpio.High}
	registerPin(c, bl)
	_, err := open(Config{
		I2CBus:       "NO_SUCH_BUS",
		BacklightPin: "TOUCH_BL",
		Backlight:    DefaultBacklight,
	}, func(time.Duration) {})
	c.Assert(err, qt.ErrorMatches, "board: .*")
	c.Assert(bl.L, qt.Equals, gpio.Low)
}
