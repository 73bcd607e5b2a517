package main

import "animehub/cmd/animehub-cli/command"

func main() {
	command.Execute()
}
