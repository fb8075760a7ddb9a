package main

import "github.com/VoxDroid/smenu/cmd"

func main() {
	cmd.Execute()
}
