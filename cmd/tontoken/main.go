package main

import (
	"github.com/ModernExodus/tontoken/cmd/tontoken/cmd"
)

func main() {
	cmd.Execute()
}
