package main

import (
	"encoding/hex"
	"fmt"
)

type ProbeCmd struct {
}

func (p *ProbeCmd) Run(c *Context) error {
	b, err := c.Board()
	if err != nil {
		return err
	}
	id := b.Touch.ID()
	fmt.Printf("AXS5106L identity: %s\n", hex.EncodeToString(id[:]))
	return nil
}

type RegReadCmd struct {
	Reg int `arg:"" name:"reg" help:"Register address." type:"hex"`
	N   int `arg:"" optional:"" name:"n" help:"Number of bytes to read." default:"1"`
}

func (r *RegReadCmd) Run(c *Context) error {
	if r.Reg < 0 || r.Reg > 0xff {
		return fmt.Errorf("register %#x out of range", r.Reg)
	}
	if r.N < 1 || r.N > 256 {
		return fmt.Errorf("read length %d out of range", r.N)
	}
	b, err := c.Board()
	if err != nil {
		return err
	}
	buf := make([]byte, r.N)
	if err := b.Touch.ReadRegister(uint8(r.Reg), buf); err != nil {
		return err
	}
	fmt.Print(hexdump(r.Reg, buf))
	return nil
}

type RegWriteCmd struct {
	Reg  int    `arg:"" name:"reg" help:"Register address." type:"hex"`
	Data string `arg:"" name:"data" help:"Hex string to write."`
}

func (r *RegWriteCmd) Run(c *Context) error {
	if r.Reg < 0 || r.Reg > 0xff {
		return fmt.Errorf("register %#x out of range", r.Reg)
	}
	payload, err := hex.DecodeString(r.Data)
	if err != nil {
		return err
	}
	b, err := c.Board()
	if err != nil {
		return err
	}
	return b.Touch.WriteRegister(uint8(r.Reg), payload)
}
