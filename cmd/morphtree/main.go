// Command morphtree runs the particle morph scene headless: it replays
// gesture scripts, dumps single frames and prints the default configuration.
package main

func main() {
	Execute()
}
