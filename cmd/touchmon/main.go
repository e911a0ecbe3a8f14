// Command touchmon probes and monitors the AXS5106L touch controller of the
// 172x320 touch panel.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/alecthomas/kong"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"touchpanel.dev/board"
	"touchpanel.dev/driver/axs5106l"
)

type Context struct {
	conf  board.Config
	board *board.Board
}

// Board brings up the panel on first use.
func (c *Context) Board() (*board.Board, error) {
	if c.board != nil {
		return c.board, nil
	}
	b, err := board.Open(c.conf)
	if err != nil {
		return nil, err
	}
	c.board = b
	return b, nil
}

type CLI struct {
	Bus           string `help:"I2C bus name or number. Empty selects the first bus." env:"TOUCH_I2C_BUS"`
	IntPin        string `name:"int-pin" help:"Touch interrupt GPIO name." env:"TOUCH_INT_PIN"`
	RstPin        string `name:"rst-pin" help:"Display reset GPIO name." env:"TOUCH_RST_PIN"`
	BlPin         string `name:"bl-pin" help:"Backlight GPIO name." env:"TOUCH_BL_PIN"`
	Backlight     string `help:"Backlight duty cycle." default:"80%" env:"TOUCH_BACKLIGHT"`
	BacklightFreq string `name:"backlight-freq" help:"Backlight PWM frequency." default:"1kHz"`
	Width         uint16 `help:"Panel width in pixels." default:"172"`
	Height        uint16 `help:"Panel height in pixels." default:"320"`
	Rotation      string `help:"Panel mounting rotation in degrees." enum:"0,90,180,270" default:"0" env:"TOUCH_ROTATION"`
	StrictID      bool   `name:"strict-id" help:"Fail if the identity probe reads back zero."`

	Probe    ProbeCmd    `cmd:"" help:"Probe the controller and show its identity."`
	Watch    WatchCmd    `cmd:"" help:"Print touches as they happen."`
	RegRead  RegReadCmd  `cmd:"" name:"reg-read" help:"Read and dump controller registers."`
	RegWrite RegWriteCmd `cmd:"" name:"reg-write" help:"Write controller registers."`
	Temp     TempCmd     `cmd:"" help:"Print the board temperature periodically."`
}

func (c *CLI) boardConfig() (board.Config, error) {
	rot, err := axs5106l.ParseRotation(c.Rotation)
	if err != nil {
		return board.Config{}, err
	}
	duty, err := gpio.ParseDuty(c.Backlight)
	if err != nil {
		return board.Config{}, fmt.Errorf("backlight: %w", err)
	}
	var freq physic.Frequency
	if err := freq.Set(c.BacklightFreq); err != nil {
		return board.Config{}, fmt.Errorf("backlight-freq: %w", err)
	}
	return board.Config{
		I2CBus:        c.Bus,
		InterruptPin:  c.IntPin,
		ResetPin:      c.RstPin,
		BacklightPin:  c.BlPin,
		Backlight:     duty,
		BacklightFreq: freq,
		Width:         c.Width,
		Height:        c.Height,
		Rotation:      rot,
		StrictID:      c.StrictID,
	}, nil
}

func newParser(cli *CLI) (*kong.Kong, error) {
	return kong.New(cli,
		kong.Name("touchmon"),
		kong.Description("Probe and monitor the AXS5106L touch controller."),
		kong.UsageOnError(),
		kong.NamedMapper("hex", intMapper{base: 16}),
	)
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("touchmon: ")

	cli := new(CLI)
	k, err := newParser(cli)
	if err != nil {
		log.Fatal(err)
	}
	ctx, err := k.Parse(os.Args[1:])
	k.FatalIfErrorf(err)

	conf, err := cli.boardConfig()
	ctx.FatalIfErrorf(err)
	c := &Context{conf: conf}
	err = ctx.Run(c)
	if c.board != nil {
		if cerr := c.board.Close(); err == nil {
			err = cerr
		}
	}
	ctx.FatalIfErrorf(err)
}
