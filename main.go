package main

import "github.com/naka-gawa/github-profile/cmd"

func main() {
	cmd.Execute()
}
