package main

import "visa-engine/cmd"

func main() {
	cmd.Execute()
}
