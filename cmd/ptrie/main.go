package main

import "github.com/absolutelightning/go-ordered-trie/internal/cli"

func main() {
	cli.Execute()
}
