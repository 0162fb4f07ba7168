package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"hardware-mapper/cmd"
)

func main() {
	// Load .env file in development (ignores error if file doesn't exist)
	// In production, variables should be set directly
	if os.Getenv("ENV") != "production" {
		// Use Overload to ensure .env values override system environment variables
		envPath := ".env"
		if err := godotenv.Overload(envPath); err != nil {
			log.Printf("Warning: .env file not found at %s, using system environment variables", envPath)
		} else {
			log.Printf("Loaded environment variables from %s", envPath)
		}
	}

	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
