package main

import (
	"os"

	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/cmd/rpdgen/internal/command"
)

// Set with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(command.Execute(version))
}
