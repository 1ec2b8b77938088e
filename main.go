package main

import (
	"log"
)

// Build details injected with -ldflags.
var (
	GitCommit string
	GitTag    string
	BuildTime string
)

func main() {
	app, err := NewApp()
	if err != nil {
		log.Fatal("adverts catalog failed to initialize: ", err)
	}
	err = app.Run()
	if err != nil {
		log.Fatal("adverts catalog exited. check logs for more details. ", err)
	}
}
