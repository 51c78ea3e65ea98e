package main

import (
	"github.com/Fras28/NextLvlPadel-sub000/internal/cli"
)

func main() {
	cli.Execute()
}
