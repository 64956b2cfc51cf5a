package main

import (
	"github.com/Jennaleighwilder/launchpad-conference-platform-sub001/internal/cli"
)

func main() {
	cli.Execute()
}
