package main

import "metalprices/cmd"

func main() {
	cmd.Execute()
}
