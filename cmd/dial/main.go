package main

import "github.com/tessro/dial/internal/cli"

func main() {
	cli.Execute()
}
