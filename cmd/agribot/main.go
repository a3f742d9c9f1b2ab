package main

import "github.com/dayti/agribot/cmd/agribot/commands"

func main() {
	commands.Execute()
}
