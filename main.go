package main

import "github.com/insight-hub/newsintel-cli/cmd"

func main() {
	cmd.Execute()
}
