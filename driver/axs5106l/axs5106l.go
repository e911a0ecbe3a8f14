// Package axs5106l implements a driver for the AXS5106L capacitive
// touch controller.
//
// The controller reports up to five simultaneous touch points. Reads are
// gated by an interrupt latch that is set by whoever observes the INT line,
// and points are transformed to display coordinates according to the
// panel mounting.
package axs5106l

import (
	"errors"
	"sync/atomic"
)

// Device is an AXS5106L touch controller on an I²C bus.
type Device struct {
	bus      Bus
	width    uint16
	height   uint16
	rotation Rotation
	strictID bool

	touches TouchData
	frame   [FrameSize]byte
	id      [idSize]byte
	pending atomic.Bool

	// Register address plus the largest payload.
	scratch [1 + MaxPayload]byte
}

// Bus is the transport the controller is attached to. Both
// periph.io/x/conn/v3/i2c.Bus and the TinyGo machine.I2C satisfy it.
type Bus interface {
	Tx(addr uint16, w, r []byte) error
}

type Config struct {
	Rotation Rotation
	// Width and Height of the panel in pixels, in its native
	// orientation.
	Width  uint16
	Height uint16
	// StrictID makes Init fail when the identity probe reads back
	// zero. By default any response is accepted.
	StrictID bool
}

const (
	// MaxTouchPoints is the number of points the controller reports.
	MaxTouchPoints = 5
	// FrameSize is the length of a touch data read: status, count and
	// two complete point records.
	FrameSize = 14
	// MaxPayload is the largest payload accepted by WriteRegister.
	MaxPayload = 32

	axs5106lAddr = 0x63

	regTOUCH_DATA = 0x01
	regID         = 0x08

	idSize    = 3
	pointSize = 6
	// Points beyond the frame decode from zero padding.
	paddedFrameSize = 2 + MaxTouchPoints*pointSize
)

var (
	ErrNoDevice        = errors.New("axs5106l: no device responded to identity probe")
	ErrPayloadTooLarge = errors.New("axs5106l: register payload too large")
)

// Coordinates is a touch point position.
type Coordinates struct {
	X, Y uint16
}

// TouchData is a frame of touch points. Count is the value reported by the
// controller and may exceed MaxTouchPoints; Points at or beyond Count hold
// stale values.
type TouchData struct {
	Points [MaxTouchPoints]Coordinates
	Count  uint8
}

// Active returns the points that are safe to read.
func (t *TouchData) Active() []Coordinates {
	return t.Points[:t.active()]
}

func (t *TouchData) active() int {
	return min(int(t.Count), MaxTouchPoints)
}

func New(bus Bus, conf Config) *Device {
	return &Device{
		bus:      bus,
		width:    conf.Width,
		height:   conf.Height,
		rotation: conf.Rotation,
		strictID: conf.StrictID,
	}
}

// Init probes the controller by reading its identity register.
func (d *Device) Init() error {
	if err := d.ReadRegister(regID, d.id[:]); err != nil {
		return err
	}
	if d.strictID && d.id[0] == 0 {
		return ErrNoDevice
	}
	return nil
}

// ID returns the identity bytes read by Init.
func (d *Device) ID() [idSize]byte {
	return d.id
}

// ReadRegister reads len(buf) bytes starting at reg. Bus errors are
// returned as is.
func (d *Device) ReadRegister(reg uint8, buf []byte) error {
	req := d.scratch[:1]
	req[0] = reg
	return d.bus.Tx(axs5106lAddr, req, buf)
}

// WriteRegister writes payload starting at reg in a single transaction.
// The payload can be at most MaxPayload bytes.
func (d *Device) WriteRegister(reg uint8, payload []byte) error {
	if len(payload) > MaxPayload {
		return ErrPayloadTooLarge
	}
	req := d.scratch[:1+len(payload)]
	req[0] = reg
	copy(req[1:], payload)
	return d.bus.Tx(axs5106lAddr, req, nil)
}

// SetInterrupt marks a touch event as pending. It never blocks and is safe
// to call from an edge handler running concurrently with ReadTouch.
func (d *Device) SetInterrupt() {
	d.pending.Store(true)
}

func (d *Device) ClearInterrupt() {
	d.pending.Store(false)
}

func (d *Device) HasInterrupt() bool {
	return d.pending.Load()
}

// ReadTouch reads and decodes a touch frame if an interrupt is pending,
// and does nothing otherwise.
//
// The pending interrupt is consumed before the bus transaction, even if it
// fails. Edges during the transaction are not guaranteed to cause another
// read; callers that cannot miss events should poll the INT line again
// afterwards.
func (d *Device) ReadTouch() error {
	if !d.pending.Swap(false) {
		return nil
	}
	var frame [paddedFrameSize]byte
	if err := d.ReadRegister(regTOUCH_DATA, frame[:FrameSize]); err != nil {
		return err
	}
	copy(d.frame[:], frame[:FrameSize])
	d.touches.Count = frame[1]
	// Keep the previous points when nothing is touched.
	if d.touches.Count == 0 {
		return nil
	}
	for i := range d.touches.active() {
		p := frame[2+i*pointSize:]
		// The last two bytes of a point are weight and area.
		d.touches.Points[i] = Coordinates{
			X: uint16(p[0]&0x0F)<<8 | uint16(p[1]),
			Y: uint16(p[2]&0x0F)<<8 | uint16(p[3]),
		}
	}
	return nil
}

// Frame returns the raw data of the last successful touch read.
func (d *Device) Frame() [FrameSize]byte {
	return d.frame
}

// Coordinates returns the last touch points transformed to display
// coordinates, or false if nothing was touched.
func (d *Device) Coordinates() (TouchData, bool) {
	if d.touches.Count == 0 {
		return TouchData{}, false
	}
	t := d.touches
	for i := range t.active() {
		t.Points[i] = Transform(d.rotation, t.Points[i], d.width, d.height)
	}
	return t, true
}

// TouchCount returns the number of touches reported by the controller.
func (d *Device) TouchCount() uint8 {
	return d.touches.Count
}

func (d *Device) HasTouches() bool {
	return d.touches.Count > 0
}
