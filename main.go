package main

import "github.com/civium-platform/zk-compliance/cmd"

func main() {
	cmd.Execute()
}
