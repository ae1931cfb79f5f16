package main

import "github.com/notargets/intergrowth/cmd"

func main() {
	cmd.Execute()
}
