package main

import "strdeque/cmd"

func main() {
	cmd.Execute()
}
