/*
Copyright © 2026 Robinclaw Authors
*/
package main

import "github.com/robinclaw/robinclaw/cmd"

func main() {
	cmd.Execute()
}
