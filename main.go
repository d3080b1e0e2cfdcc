package main

import (
	"log"

	"yashubustudio/clusterviz/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		log.Fatalf("clusterviz: %v", err)
	}
}
