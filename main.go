package main

import "github.com/varalys/piiguard/cmd/piiguard"

func main() { piiguard.Execute() }
