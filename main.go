/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>

*/
package main

import "github.com/RASHMI-2005/hospital-management-system/cmd"

func main() {
	cmd.Execute()
}
