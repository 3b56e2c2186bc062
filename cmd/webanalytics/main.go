package main

import "github.com/Shrawan0701/webanalytics/internal/cli"

func main() {
	cli.Execute()
}
