package main

import "instafolio/cmd"

func main() {
	cmd.Execute()
}
