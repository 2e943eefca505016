package main

import (
	"github.com/solmock/shadow-oracle/internal/cli"
)

func main() {
	cli.Execute()
}
