package main

import "orarctl/cmd"

func main() {
	cmd.Execute()
}
