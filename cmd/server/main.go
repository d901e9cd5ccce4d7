package main

import "worklog/internal/app/server"

func main() {
	server.Run()
}
