package main

import "billfold/cmd"

func main() {
	cmd.Execute()
}
