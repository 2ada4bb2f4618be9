package main

import "github.com/sadopc/ekwiwalent/internal/cli"

func main() {
	cli.Execute()
}
