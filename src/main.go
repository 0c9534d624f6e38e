package main

import (
	"github.com/CodingWithCalvin/jsshelper.cli/src/cmd"
)

func main() {
	cmd.Execute()
}
