package main

import (
	"log"

	"github.com/gridsteel/steelflex/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
