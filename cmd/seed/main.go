package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/nz-walks-api/config"
)

type seedRegion struct {
	Code     string
	Name     string
	ImageURL string
}

var regions = []seedRegion{
	{Code: "AKL", Name: "Auckland", ImageURL: "https://images.pexels.com/photos/5169056/pexels-photo-5169056.jpeg"},
	{Code: "NTL", Name: "Northland"},
	{Code: "BOP", Name: "Bay Of Plenty"},
	{Code: "WGN", Name: "Wellington", ImageURL: "https://images.pexels.com/photos/4350631/pexels-photo-4350631.jpeg"},
	{Code: "NSN", Name: "Nelson", ImageURL: "https://images.pexels.com/photos/13918194/pexels-photo-13918194.jpeg"},
	{Code: "STL", Name: "Southland"},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	// code carries no unique constraint, so skip codes that already exist
	for _, r := range regions {
		var image sql.NullString
		if r.ImageURL != "" {
			image = sql.NullString{String: r.ImageURL, Valid: true}
		}
		var id string
		err := db.QueryRow(`
			INSERT INTO regions (code, name, region_image_url)
			SELECT $1, $2, $3
			WHERE NOT EXISTS (SELECT 1 FROM regions WHERE code = $1)
			RETURNING id
		`, r.Code, r.Name, image).Scan(&id)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			fmt.Printf("region %s already present\n", r.Code)
		case err != nil:
			log.Fatalf("failed to seed region %s: %v", r.Code, err)
		default:
			fmt.Printf("seeded region: id=%s code=%s name=%s\n", id, r.Code, r.Name)
		}
	}
}
