package main

import "github.com/ademuri/listening-report/cmd"

func main() {
	cmd.Execute()
}
