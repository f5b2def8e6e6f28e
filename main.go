package main

import "github.com/girkit/girdoc/cmd"

func main() {
	cmd.Execute()
}
