package main

import "brtoolchain/internal/cli"

func main() {
	cli.Execute()
}
