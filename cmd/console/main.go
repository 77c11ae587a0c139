package main

import "github.com/erfansky/Dressmaking/cmd/console/commands"

func main() {
	commands.Execute()
}
