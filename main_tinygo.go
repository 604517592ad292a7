//go:build tinygo

package main

import (
	"tdisplay/app"
	"tdisplay/hal"
)

func main() {
	h, err := hal.New()
	if err != nil {
		hal.Console().WriteLineString("fatal: " + err.Error())
		select {}
	}
	app.Run(h, app.DefaultConfig())
	select {}
}
