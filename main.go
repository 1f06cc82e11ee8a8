package main

import "github.com/lexiscan/lexiscan/cmd"

func main() {
	cmd.Execute()
}
