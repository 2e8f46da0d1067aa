package main

import "report-reconciler/cmd"

func main() {
	cmd.Execute()
}
