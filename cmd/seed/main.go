// Package main provides a tool to seed a starter song database.
//
// This writes a songs.json with a set of well-known Grateful Dead titles
// and the alias spellings that show up on circulating recordings, so a
// fresh install can normalize something before any songs are added by hand.
//
// Usage:
//
//	go run ./cmd/seed --songdb-path ~/TapeVault/data/songs.json
package main

import (
	"fmt"
	"os"

	"github.com/tapevault/tapevault-server/internal/config"
	"github.com/tapevault/tapevault-server/internal/songdb"
)

func main() {
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	path := cfg.Library.SongDBPath
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(os.Stderr, "refusing to overwrite existing song database at %s\n", path)
		os.Exit(1)
	}

	db := &songdb.Database{
		Artists: []songdb.Artist{{
			Name: "Grateful Dead",
			Songs: []songdb.Song{
				{Title: "Scarlet Begonias"},
				{Title: "Fire on the Mountain", Aliases: []string{"FOTM", "Fire"}},
				{Title: "China Cat Sunflower", Aliases: []string{"China Cat"}},
				{Title: "I Know You Rider", Aliases: []string{"Rider"}},
				{Title: "Playing in the Band", Aliases: []string{"Playin' in the Band", "Playin"}},
				{Title: "Goin' Down the Road Feeling Bad", Aliases: []string{"GDTRFB", "Going Down the Road Feeling Bad"}},
				{Title: "Truckin'", Aliases: []string{"Truckin", "Trucking"}},
				{Title: "Uncle John's Band", Aliases: []string{"UJB"}},
				{Title: "Dark Star"},
				{Title: "St. Stephen", Aliases: []string{"Saint Stephen"}},
				{Title: "The Other One", Aliases: []string{"Other One"}},
				{Title: "Morning Dew"},
				{Title: "Estimated Prophet"},
				{Title: "Eyes of the World", Aliases: []string{"Eyes"}},
				{Title: "Help on the Way"},
				{Title: "Slipknot!", Aliases: []string{"Slipknot"}},
				{Title: "Franklin's Tower", Aliases: []string{"Franklins Tower"}},
				{Title: "Not Fade Away", Aliases: []string{"NFA"}},
				{Title: "Turn On Your Love Light", Aliases: []string{"Lovelight", "Love Light"}},
				{Title: "Drums"},
				{Title: "Space"},
			},
		}},
	}

	if err := songdb.Save(path, db); err != nil {
		fmt.Fprintf(os.Stderr, "write song database: %v\n", err)
		os.Exit(1)
	}

	total := 0
	for _, a := range db.Artists {
		total += len(a.Songs)
	}
	fmt.Printf("Seeded %d songs to %s\n", total, path)
}
