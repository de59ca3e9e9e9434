package main

import "examku_backend/internals/cli"

func main() {
	cli.Execute()
}
