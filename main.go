package main

import (
	"github.com/arcane8/chippy/cmd"
	"github.com/faiface/pixel/pixelgl"
)

func main() {
	// pixelgl needs to own the main thread on some platforms, so the whole
	// cobra command tree runs inside pixelgl.Run rather than being called
	// directly.
	pixelgl.Run(cmd.Execute)
}
