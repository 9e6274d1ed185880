package main

import "pahe/cmd"

func main() {
	cmd.Execute()
}
