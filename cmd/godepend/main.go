package main

import "github.com/dbsmedya/godepend/cmd/godepend/cmd"

func main() {
	cmd.Execute()
}
