package main

import "github.com/Kadoinkus/chatbot-platform/cmd"

func main() {
	cmd.Execute()
}
