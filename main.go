package main

import "github.com/jsphweid/chartpak/cmd"

func main() {
	cmd.Execute()
}
