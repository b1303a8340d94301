package main

import "github.com/theirongolddev/budgetburn/cmd"

func main() {
	cmd.Execute()
}
