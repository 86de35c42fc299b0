package main

import "stock-checker/cmd"

func main() {
	cmd.Execute()
}
