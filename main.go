package main

import "github.com/Ritik-Gupta8/Optical-Labs/cmd"

func main() {
	cmd.Execute()
}
