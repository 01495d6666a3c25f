package main

import "github.com/theirongolddev/optimscale/cmd"

func main() {
	cmd.Execute()
}
