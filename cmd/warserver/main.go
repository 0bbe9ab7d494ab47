package main

import "github.com/mcoot/wargame-go/internal/cli"

func main() {
	cli.Execute()
}
