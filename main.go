package main

import "github.com/meshforge/meshkit/cmd"

func main() {
	cmd.Execute()
}
