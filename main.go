package main

import "stacksync/cmd"

func main() {
	cmd.Execute()
}
