package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"medreport/internal"
	"medreport/internal/catalog"
	"medreport/internal/config"
	"medreport/internal/inbox"
	gmailconnector "medreport/internal/inbox/gmail"
	imapconnector "medreport/internal/inbox/imap"
	"medreport/internal/ingest"
	"medreport/internal/listener"
	"medreport/internal/ocr"
	"medreport/internal/pipeline"
	"medreport/internal/server"
	"medreport/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	cmd := os.Args[1]
	switch cmd {
	case "run":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		text := fs.String("text", "", "raw report text")
		input := fs.String("input", "", "input file path")
		inType := fs.String("type", "text", "text|html|pdf|xlsx|eml")
		image := fs.String("image", "", "image file path (requires OCR_BASE_URL)")
		out := fs.String("out", "", "optional output xlsx path")
		_ = fs.Parse(os.Args[2:])

		cat, err := storage.LoadCatalog(db, cfg.CatalogPath)
		must(err)
		proc := pipeline.NewProcessor(cfg, cat)

		var result internal.PipelineResult
		switch {
		case strings.TrimSpace(*image) != "":
			data, err := os.ReadFile(*image)
			must(err)
			ocrResult, err := ocr.NewClient(cfg).Recognize(context.Background(), data)
			must(err)
			result = proc.Process("", &ocrResult)
		case strings.TrimSpace(*input) != "":
			raw, err := ingest.FromInput(*inType, *input)
			must(err)
			result = proc.NormalizeAndSummarize(raw)
		default:
			result = proc.NormalizeAndSummarize(*text)
		}

		encoded, err := json.MarshalIndent(result, "", "  ")
		must(err)
		fmt.Println(string(encoded))

		if strings.TrimSpace(*out) != "" {
			must(pipeline.ExportResultToXLSX(result, *out))
		}
	case "catalog:import":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		file := fs.String("file", "", "catalog seed yaml")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*file) == "" {
			must(fmt.Errorf("--file is required"))
		}
		entries, err := catalog.LoadFile(*file)
		must(err)
		if _, err := catalog.New(entries); err != nil {
			must(err)
		}
		must(db.UpsertCatalogEntries(entries))
		fmt.Printf("catalog import done entries=%d\n", len(entries))
	case "catalog:list":
		cat, err := storage.LoadCatalog(db, cfg.CatalogPath)
		must(err)
		for _, name := range cat.Names() {
			entry, _ := cat.Get(name)
			fmt.Printf("%-28s %-12s %10.2f %10.2f\n", entry.CanonicalName, entry.Unit, entry.RefLow, entry.RefHigh)
		}
	case "inbox:fetch":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		provider := fs.String("provider", cfg.ListenerProvider, "imap|gmail")
		label := fs.String("label", cfg.ListenerLabel, "mailbox/label")
		max := fs.Int("max", 50, "max messages")
		_ = fs.Parse(os.Args[2:])
		conn, err := makeConnector(cfg, *provider)
		must(err)
		fetch := inbox.NewFetchService(db, cfg.RawReportDir, conn)
		result, err := fetch.FetchAndStore(*label, *max)
		must(err)
		fmt.Printf("inbox fetch done provider=%s fetched=%d stored=%d\n", *provider, result.Fetched, result.Stored)
	case "inbox:process":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		batch := fs.Int("batch", cfg.ListenerProcessBatch, "batch size")
		_ = fs.Parse(os.Args[2:])
		cat, err := storage.LoadCatalog(db, cfg.CatalogPath)
		must(err)
		svc := listener.NewService(db, cfg, pipeline.NewProcessor(cfg, cat))
		processed, err := svc.ProcessPending(*batch)
		must(err)
		fmt.Printf("inbox process done processed=%d\n", processed)
	case "listen":
		cat, err := storage.LoadCatalog(db, cfg.CatalogPath)
		must(err)
		svc := listener.NewService(db, cfg, pipeline.NewProcessor(cfg, cat))
		must(svc.Run(context.Background()))
	case "serve":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		addr := fs.String("addr", cfg.HTTPAddr, "listen address")
		_ = fs.Parse(os.Args[2:])
		cat, err := storage.LoadCatalog(db, cfg.CatalogPath)
		must(err)
		handler := server.NewHandler(pipeline.NewProcessor(cfg, cat), ocr.NewClient(cfg))
		must(server.New(handler).Start(*addr))
	default:
		usage()
		os.Exit(1)
	}
}

func makeConnector(cfg config.Config, provider string) (inbox.Connector, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "gmail":
		return gmailconnector.NewConnector(cfg)
	case "imap":
		return imapconnector.NewConnector(cfg)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

func usage() {
	fmt.Println("usage: medreport <command>")
	fmt.Println("commands:")
	fmt.Println("  run --text=... | --input=... --type=text|html|pdf|xlsx|eml | --image=... [--out=...xlsx]")
	fmt.Println("  catalog:import --file=catalog.yaml")
	fmt.Println("  catalog:list")
	fmt.Println("  inbox:fetch --provider=imap|gmail --label=INBOX --max=50")
	fmt.Println("  inbox:process [--batch=20]")
	fmt.Println("  listen")
	fmt.Println("  serve --addr=:8080")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
