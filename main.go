package main

import "parking-marketplace/cmd"

func main() {
	cmd.Execute()
}
