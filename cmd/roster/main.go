package main

import "github.com/mcoot/playerroster/internal/cli"

func main() {
	cli.Execute()
}
