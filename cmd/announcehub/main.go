// Command announcehub serves the school announcements API.
package main

import (
	"context"
	"log"

	"github.com/dalemusser/announcehub/internal/app/bootstrap"
	"github.com/dalemusser/waffle/app"
)

func main() {
	if err := app.Run(context.Background(), bootstrap.Hooks); err != nil {
		log.Fatal(err)
	}
}
