package main

import "cigate/internal/cli"

func main() {
	cli.Execute()
}
