package main

import "github.com/hostdesk/hostdesk/cmd"

func main() {
	cmd.Execute()
}
