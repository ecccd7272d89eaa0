package main

import "github.com/FlorianKrull/mcc/cmd"

var version = "v0.1.0"

func main() {
	cmd.Execute(version)
}
