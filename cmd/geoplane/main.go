package main

import "github.com/philipparndt/geoplane/cmd"

func main() {
	cmd.Execute()
}
