package main

import "github.com/oguzb/momentum/internal/cli"

func main() {
	cli.Execute()
}
