package main

import (
	"github.com/bartdebruin-tp/matchmaker/internal/cli"
)

func main() {
	cli.Execute()
}
