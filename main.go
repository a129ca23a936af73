package main

import "tigerc/cmd"

func main() {
	cmd.Execute()
}
