package main

import "iotracker/cmd/client/cmd"

func main() {
	cmd.Execute()
}
