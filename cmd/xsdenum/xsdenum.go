package main

import (
	"log"
	"os"

	"aqwari.net/xsdquery/enumgen"
)

func main() {
	log.SetFlags(0)
	var cfg enumgen.Config
	cfg.Option(enumgen.DefaultOptions...)
	cfg.Option(enumgen.LogOutput(log.New(os.Stderr, "", 0)))

	if err := cfg.GenCLI(os.Args[1:]...); err != nil {
		log.Fatal(err)
	}
}
