package main

import "scrapper/cmd"

func main() {
	cmd.Execute()
}
