package main

import "github.com/oshokin/alarm-clock/cmd/alarm-clock-ctl/cmd"

func main() {
	cmd.Execute()
}
