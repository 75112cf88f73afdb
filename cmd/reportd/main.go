package main

import (
	"fmt"
	"os"

	"medreport/internal/config"
	"medreport/internal/ocr"
	"medreport/internal/pipeline"
	"medreport/internal/server"
	"medreport/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	cat, err := storage.LoadCatalog(db, cfg.CatalogPath)
	must(err)

	handler := server.NewHandler(pipeline.NewProcessor(cfg, cat), ocr.NewClient(cfg))
	must(server.New(handler).Start(cfg.HTTPAddr))
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
