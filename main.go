package main

import "github.com/mabhi256/jprobe/cmd"

func main() {
	cmd.Execute()
}
