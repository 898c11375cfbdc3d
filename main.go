package main

import "github.com/user/docsite/cmd"

func main() {
	cmd.Execute()
}
