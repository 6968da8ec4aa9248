package main

import (
	"github.com/graphplane/graphplane/cmd"
)

func main() {
	cmd.Execute()
}
