// antctl is the command line client for the ant colony game server.
package main

import "github.com/dantte-lp/antcolonyd/cmd/antctl/commands"

func main() {
	commands.Execute()
}
