package main

import "github.com/Tiliavir/contractor-time-tracker/cmd"

func main() {
	cmd.Execute()
}
