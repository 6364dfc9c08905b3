package main

import "github.com/mcoot/seedroom/internal/cli"

func main() {
	cli.Execute()
}
