package main

import "github.com/mritunjay-prog/DeviceProvisioning/cmd"

func main() {
	cmd.Execute()
}
