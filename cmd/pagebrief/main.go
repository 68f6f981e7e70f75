package main

import (
	"pagebrief/cmd/handlers"
	"pagebrief/internal/logger"
)

func main() {
	logger.Init() // Initialize the logger
	handlers.Execute()
}
