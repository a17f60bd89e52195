package main

import "github.com/materials-commons/mceln/cmd/mcelnd/cmd"

func main() {
	cmd.Execute()
}
