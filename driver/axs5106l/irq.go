package axs5106l

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// PollInterrupt samples the active low INT line and marks an interrupt as
// pending if it is asserted. It reports whether the line was asserted.
func (d *Device) PollInterrupt(pin gpio.PinIn) bool {
	if pin.Read() != gpio.Low {
		return false
	}
	d.SetInterrupt()
	return true
}

// WatchInterrupt configures pin for falling edge detection and marks an
// interrupt as pending on every edge until quit is closed.
func (d *Device) WatchInterrupt(pin gpio.PinIn, quit <-chan struct{}) error {
	if err := pin.In(gpio.PullUp, gpio.FallingEdge); err != nil {
		return fmt.Errorf("axs5106l: interrupt pin: %w", err)
	}
	go func() {
		// Wake up regularly to notice quit.
		const timeout = 100 * time.Millisecond
		for {
			select {
			case <-quit:
				return
			default:
			}
			if pin.WaitForEdge(timeout) {
				d.SetInterrupt()
			}
		}
	}()
	return nil
}
