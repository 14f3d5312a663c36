package main

import (
	"log"

	"github.com/teolier/asset-office/cmd"
	"github.com/teolier/asset-office/config"
)

func main() {
	log.Printf("asset office %s (%s)", config.Version, config.CommitHash)
	cmd.Execute()
}
