package main

import "github.com/funvibe/rva/pkg/cli"

func main() {
	cli.Run()
}
