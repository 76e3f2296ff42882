package main

import "github.com/planforge/planforge/cmd"

func main() {
	cmd.Execute()
}
