package main

import (
	"os"

	"eventers-marketplace-client/cli"
	"eventers-marketplace-client/factory"
	"eventers-marketplace-client/notify"

	_ "github.com/joho/godotenv/autoload"
)

var (
	version string
)

func main() {
	f := factory.NewFactory()
	n := notify.NewConsole(os.Stderr)

	root := cli.New(f, n, os.Stdout)
	root.Version = version
	err := root.Execute()
	f.Close()
	if err != nil {
		notify.Error(n, err)
		os.Exit(1)
	}
}
