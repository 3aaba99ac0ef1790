package main

import (
	"github.com/soartravel/soar/cmd/soar/cmd"
)

func main() {
	cmd.Execute()
}
