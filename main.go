package main

import "seeker/cmd"

func main() {
	cmd.Execute()
}
