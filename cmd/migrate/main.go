// Command migrate runs schema operations for the backend. The server only
// auto-migrates outside production, so production schemas are applied here.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"comunidad/internal/config"
	"comunidad/internal/database"

	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func usage() error {
	return fmt.Errorf("usage: go run ./cmd/migrate <auto|status>")
}

func run() error {
	flag.Parse()
	if flag.NArg() < 1 {
		return usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(flag.Arg(0))) {
	case "auto":
		if err := database.Migrate(db); err != nil {
			return err
		}
		log.Println("automigrations applied")
	case "status":
		printStatus(db)
	default:
		return usage()
	}
	return nil
}

func printStatus(db *gorm.DB) {
	migrator := db.Migrator()
	for _, model := range database.PersistentModels() {
		stmt := &gorm.Statement{DB: db}
		table := fmt.Sprintf("%T", model)
		if err := stmt.Parse(model); err == nil {
			table = stmt.Schema.Table
		}
		state := "missing"
		if migrator.HasTable(model) {
			state = "present"
		}
		log.Printf("%-12s %s", table, state)
	}
}
