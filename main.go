package main

import "github.com/jsphweid/pianobench/cmd"

func main() {
	cmd.Execute()
}
