package main

import "notesapp/cmd"

func main() {
	cmd.Execute()
}
