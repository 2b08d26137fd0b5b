package main

import "batchboard/b/internal/cli"

func main() {
	cli.Execute()
}
