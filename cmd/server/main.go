package main

import "github.com/vanguardgg/sitecms/internal/cli"

func main() {
	cli.Execute()
}
