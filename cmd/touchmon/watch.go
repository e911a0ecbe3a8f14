package main

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/fatih/color"
	"touchpanel.dev/driver/axs5106l"
)

type WatchCmd struct {
	Interval time.Duration `help:"Polling interval." default:"10ms"`
	Edge     bool          `help:"Use edge detection on the interrupt line instead of sampling it."`
	Raw      bool          `help:"Dump the raw touch frames."`
}

func (w *WatchCmd) Run(c *Context) error {
	if w.Interval <= 0 {
		return errors.New("interval must be positive")
	}
	b, err := c.Board()
	if err != nil {
		return err
	}
	touch := b.Touch
	intr := b.Interrupt()
	quit := make(chan struct{})
	defer close(quit)
	if w.Edge {
		if intr == nil {
			return errors.New("edge detection needs --int-pin")
		}
		if err := touch.WatchInterrupt(intr, quit); err != nil {
			return err
		}
	}
	stop := stopSignals()
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return nil
		case <-ticker.C:
		}
		switch {
		case w.Edge:
		case intr != nil:
			touch.PollInterrupt(intr)
		default:
			// Without an interrupt line, read every tick.
			touch.SetInterrupt()
		}
		if !touch.HasInterrupt() {
			continue
		}
		if err := touch.ReadTouch(); err != nil {
			log.Printf("read touch: %v", err)
			continue
		}
		if w.Raw {
			f := touch.Frame()
			fmt.Print(hexdump(0, f[:]))
		}
		td, ok := touch.Coordinates()
		if !ok {
			continue
		}
		fmt.Println(formatTouches(td))
	}
}

var (
	countColor = color.New(color.FgCyan)
	pointColor = color.New(color.FgGreen)
	warnColor  = color.New(color.FgYellow)
)

// formatTouches formats the active points of a frame. Reported counts above
// the capacity of the controller are flagged.
func formatTouches(td axs5106l.TouchData) string {
	var b strings.Builder
	b.WriteString(countColor.Sprintf("%d", len(td.Active())))
	for _, p := range td.Active() {
		b.WriteString(" ")
		b.WriteString(pointColor.Sprintf("(%d,%d)", p.X, p.Y))
	}
	if int(td.Count) > axs5106l.MaxTouchPoints {
		b.WriteString(" ")
		b.WriteString(warnColor.Sprintf("[reported %d]", td.Count))
	}
	return b.String()
}
