package main

import "cancerdetect/internal/cli"

func main() {
	cli.Execute()
}
