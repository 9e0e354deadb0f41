package main

import "github.com/qtje/comic/cmd"

func main() {
	cmd.Execute()
}
