package main

import "github.com/srcjump/srcjump/internal/cli"

func main() {
	cli.Execute()
}
