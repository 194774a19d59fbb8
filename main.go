// Copyright © 2025 The pysca authors

package main

import "github.com/luthersystems/pysca/cmd"

func main() {
	cmd.Execute()
}
