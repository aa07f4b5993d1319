package main

import "github.com/soocke/smile-booth-go/cmd"

func main() {
	cmd.Execute()
}
