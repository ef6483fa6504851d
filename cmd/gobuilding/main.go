package main

import "github.com/philipparndt/gobuilding/cmd"

func main() {
	cmd.Execute()
}
