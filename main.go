package main

import "github.com/lixenwraith/keepsake/cli"

func main() {
	cli.Execute()
}
