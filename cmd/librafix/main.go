package main

import "github.com/LeJamon/goLibra/internal/cli"

func main() {
	cli.Execute()
}
