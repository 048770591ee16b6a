package main

import "launcher/cmd"

func main() {
	cmd.Execute()
}
