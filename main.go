package main

import "github.com/brogergvhs/nataliefeed/cmd"

func main() {
	cmd.Execute()
}
