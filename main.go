package main

import "github.com/multipattern/pfacmatch/cmd"

func main() {
	cmd.Execute()
}
