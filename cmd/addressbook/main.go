// Package main provides the addressbook CLI.
package main

import "github.com/mesh-intelligence/addressbook/internal/cli"

func main() {
	cli.Execute()
}
