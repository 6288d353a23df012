package main

import "journey/cmd/journey-cli/cmd"

func main() {
	cmd.Execute()
}
