package main

import "github.com/mselser95/trade-hauls/cmd"

func main() {
	cmd.Execute()
}
