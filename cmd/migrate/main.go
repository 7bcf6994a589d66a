package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"investcraft/internal/datastore"
	"investcraft/internal/models"

	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/urfave/cli/v2"
)

func init() {
	// for development
	//nolint:errcheck
	godotenv.Load("../../.env")

	// for production
	//nolint:errcheck
	godotenv.Load("./.env")
}

func main() {
	app := &cli.App{
		Name: "migrate",
		Commands: []*cli.Command{
			commandMigration(),
			commandSeed(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandMigration() *cli.Command {
	return &cli.Command{
		Name: "migrate",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableUser(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTablePuzzle(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableGameSession(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTablePuzzleVote(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableShareClick(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			fmt.Println("Migration success")

			return nil
		},
	}
}

// commandSeed loads puzzles from a CSV with columns:
// company_name,ticker,logo_url,difficulty,sector,hint,description
func commandSeed() *cli.Command {
	return &cli.Command{
		Name: "seed",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "input",
				Value: "./puzzles.csv",
			},
		},
		Action: func(c *cli.Context) error {
			ctx := context.Background()

			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			inputPath := c.String("input")
			file, err := os.Open(inputPath)
			if err != nil {
				return err
			}
			defer file.Close()

			r := csv.NewReader(file)
			count := 0

			for {
				row, err := r.Read()
				if err == io.EOF {
					break
				}
				if err != nil {
					return err
				}
				if len(row) < 7 {
					fmt.Println("skipping short row:", row)
					continue
				}

				difficulty, err := strconv.Atoi(row[3])
				if err != nil {
					difficulty = 1
				}

				puzzle := &models.Puzzle{
					CompanyName: row[0],
					Ticker:      row[1],
					LogoURL:     row[2],
					Difficulty:  difficulty,
					Sector:      row[4],
					Hint:        row[5],
					Description: row[6],
				}

				err = datastore.CreatePuzzle(ctx, db, puzzle)
				if err != nil {
					fmt.Println(err)
					continue
				}
				count++
			}

			fmt.Println("Seeded", count, "puzzles")

			return nil
		},
	}
}

func getDb() (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(os.Getenv("DB_DSN")),
		pgdriver.WithPassword(os.Getenv("DB_PASSWORD")),
	))

	db := bun.NewDB(sqldb, pgdialect.New())
	return db, nil
}
