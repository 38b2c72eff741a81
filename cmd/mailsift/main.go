package main

import (
	"os"

	"github.com/mikey/mailsift/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
