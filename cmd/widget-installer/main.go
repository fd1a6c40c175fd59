package main

import "widget-installer/internal/cli"

func main() {
	cli.Execute()
}
