package main

import (
	"context"
	"log"

	"github.com/sustentabag/business-dashboard/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("dashboard API failed: %v", err)
	}
}
