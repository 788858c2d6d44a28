package main

import "paymaster/internal/app/server"

func main() {
	server.Run()
}
