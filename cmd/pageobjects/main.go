package main

import "github.com/devicelab-dev/pageobjects/pkg/cli"

func main() {
	cli.Execute()
}
