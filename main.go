package main

import "github.com/heydenberk/arithmatrix/cmd"

func main() {
	cmd.Execute()
}
