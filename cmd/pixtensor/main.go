package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

func main() {
	if err := NewCLI().Execute(); err != nil {
		log.Errorf("pixtensor: %v", err)
		os.Exit(1)
	}
}
