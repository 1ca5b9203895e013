package main

import "kwaigrab/cmd"

func main() {
	cmd.Execute()
}
