package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"

	"github.com/pointmap/pointmap/internal/tools"
)

func main() {
	// Optional .env with defaults such as POINTMAP_THEME.
	_ = godotenv.Load()

	s := server.NewMCPServer(
		"pointmap",
		"1.0.0",
	)

	tools.Register(s)

	if err := server.ServeStdio(s); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
