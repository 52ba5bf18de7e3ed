// Command expensectl runs schema migrations and prints expense reports from the terminal.
package main

func main() {
	Execute()
}
