package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// hexdump formats data 16 bytes per line, starting at register offset.
// Non-zero bytes are highlighted.
func hexdump(offset int, data []byte) string {
	const width = 16
	var b strings.Builder
	hi := color.New(color.FgYellow)
	for len(data) > 0 {
		line := data[:min(len(data), width)]
		data = data[len(line):]
		fmt.Fprintf(&b, "%02x: ", offset)
		for i := range width {
			switch {
			case i >= len(line):
				b.WriteString("   ")
			case line[i] != 0:
				b.WriteString(hi.Sprintf("%02x ", line[i]))
			default:
				fmt.Fprintf(&b, "%02x ", line[i])
			}
			if i%8 == 7 {
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")
		offset += len(line)
	}
	return b.String()
}
