package main

import "github.com/williampepple1/bondsports-scraper/internal/cli"

func main() {
	cli.Execute()
}
