package main

import "github.com/josephlewis42/minibash/cmd"

func main() {
	cmd.Execute()
}
