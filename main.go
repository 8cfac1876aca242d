package main

import "github.com/theirongolddev/roombudget/cmd"

func main() {
	cmd.Execute()
}
