package main

import "github.com/Geun-Oh/logview/internal/cmd"

func main() {
	cmd.Execute()
}
