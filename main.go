package main

import (
	"citizens-link/cmd"
)

func main() {
	cmd.Execute()
}
