package main

import "github.com/provkit/provkit/cmd/provkit"

func main() { provkit.Execute() }
