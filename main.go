package main

import "github.com/harrisonrobin/taskpad/pkg/cli"

func main() {
	cli.Main()
}
