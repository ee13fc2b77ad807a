package main

import "github.com/garymjr/forest/cmd"

func main() {
	cmd.Execute()
}
