// cmd/seed/main.go
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/andresuchdata/retail-ops/internal/seed"
	"github.com/andresuchdata/retail-ops/internal/storage"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func newOutDirFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "out-dir",
		Usage:   "Directory the fixture files are written to",
		Value:   "./data/demo_data_100k",
		EnvVars: []string{"DATA_DIR"},
	}
}

func newTodayFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "today",
		Usage:   "Anchor date (2006-01-02) the datasets are generated around",
		Value:   "2025-11-01",
		EnvVars: []string{"RETAIL_TODAY"},
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Generate and publish the demo fixture datasets",
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "Generate the seven fixture files",
				Flags: []cli.Flag{
					newOutDirFlag(),
					newTodayFlag(),
					&cli.Int64Flag{
						Name:  "seed",
						Usage: "PRNG seed; the same seed reproduces identical files",
						Value: 42,
					},
					&cli.IntFlag{
						Name:  "skus",
						Usage: "Number of SKUs to generate",
						Value: 120,
					},
				},
				Action: runGenerate,
			},
			{
				Name:  "verify",
				Usage: "Check an existing fixture directory parses and report record counts",
				Flags: []cli.Flag{
					newOutDirFlag(),
				},
				Action: runVerify,
			},
			{
				Name:  "publish",
				Usage: "Upload a fixture directory to the configured bucket",
				Flags: []cli.Flag{
					newOutDirFlag(),
					&cli.StringFlag{Name: "endpoint", EnvVars: []string{"STORAGE_ENDPOINT"}, Required: true},
					&cli.StringFlag{Name: "access-key", EnvVars: []string{"STORAGE_ACCESS_KEY"}, Required: true},
					&cli.StringFlag{Name: "secret-key", EnvVars: []string{"STORAGE_SECRET_KEY"}, Required: true},
					&cli.StringFlag{Name: "bucket", EnvVars: []string{"STORAGE_BUCKET"}, Required: true},
					&cli.StringFlag{Name: "region", EnvVars: []string{"STORAGE_REGION"}, Value: "us-east-1"},
					&cli.StringFlag{Name: "prefix", EnvVars: []string{"STORAGE_PREFIX"}, Value: "demo_data_100k"},
					&cli.BoolFlag{Name: "use-ssl", EnvVars: []string{"STORAGE_USE_SSL"}, Value: true},
				},
				Action: runPublish,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runGenerate(c *cli.Context) error {
	today, err := time.Parse("2006-01-02", c.String("today"))
	if err != nil {
		return fmt.Errorf("invalid --today value: %w", err)
	}

	ds := seed.Generate(seed.Config{
		Seed:     c.Int64("seed"),
		SKUCount: c.Int("skus"),
		Today:    today,
	})
	return seed.WriteAll(ds, c.String("out-dir"))
}

func runVerify(c *cli.Context) error {
	dir := c.String("out-dir")
	files := []string{
		"stores.json", "suppliers.json", "skus.json", "inventory.json",
		"purchase_orders.json", "sales_transactions.json", "demand_forecast.json",
	}
	for _, name := range files {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("missing dataset %s: %w", name, err)
		}
		var records []json.RawMessage
		if err := json.Unmarshal(data, &records); err != nil {
			return fmt.Errorf("dataset %s is not a JSON array: %w", name, err)
		}
		fmt.Printf("%-24s %8d records\n", name, len(records))
	}
	return nil
}

func runPublish(c *cli.Context) error {
	client, err := storage.NewMinioClient(c.Context, storage.S3Config{
		Endpoint:  c.String("endpoint"),
		AccessKey: c.String("access-key"),
		SecretKey: c.String("secret-key"),
		Bucket:    c.String("bucket"),
		Region:    c.String("region"),
		UseSSL:    c.Bool("use-ssl"),
	})
	if err != nil {
		return err
	}
	n, err := storage.PublishFixtures(c.Context, client, c.String("out-dir"), c.String("prefix"))
	if err != nil {
		return fmt.Errorf("published %d files before failing: %w", n, err)
	}
	fmt.Printf("published %d fixture files\n", n)
	return nil
}
