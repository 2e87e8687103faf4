package main

import "github.com/nfrund/profiledash/cmd/profilectl/cmd"

func main() {
	cmd.Execute()
}
