package main

import "ota-server/cmd"

func main() {
	cmd.Execute()
}
