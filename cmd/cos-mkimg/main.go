package main

import "cos-mkimg/internal/cli"

func main() {
	cli.Execute()
}
