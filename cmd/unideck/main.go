package main

import "github.com/unideck/unideck/cmd/unideck/cmd"

func main() {
	cmd.Execute()
}
