package main

import "horaboard/cmd"

func main() {
	cmd.Execute()
}
