package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/cnab-returns/internal/cnab"
	"github.com/dvloznov/cnab-returns/internal/cnab/banks"
	"github.com/dvloznov/cnab-returns/internal/config"
	"github.com/dvloznov/cnab-returns/internal/gcs"
	"github.com/dvloznov/cnab-returns/internal/gcsuploader"
	infraBQ "github.com/dvloznov/cnab-returns/internal/infra/bigquery"
	"github.com/dvloznov/cnab-returns/internal/logger"
	"github.com/dvloznov/cnab-returns/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log := logger.New()
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	// Logs go to stderr so parse output can be piped.
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(logger.NewWithLevel(cfg.App.LogLevel).GetLevel()).
		With().Timestamp().Logger()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "parse":
		runParse(cfg, log)
	case "ingest":
		runIngest(cfg, log)
	case "upload":
		runUpload(cfg, log)
	case "list":
		runList(cfg, log)
	case "inspect":
		runInspect(cfg, log)
	case "delete":
		runDelete(cfg, log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("CNAB Returns CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  cli <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  parse     Parse a return file and print it as JSON")
	fmt.Println("  ingest    Parse a return file and load it into the ledger")
	fmt.Println("  upload    Upload a return file to the GCS inbox")
	fmt.Println("  list      List ingested return files")
	fmt.Println("  inspect   Show the transactions of an ingested return file")
	fmt.Println("  delete    Remove a return file and its rows from the ledger")
	fmt.Println("  help      Show this help message")
	fmt.Println("\nRun 'cli <command> -h' for more information on a command.")
}

func runParse(cfg config.Config, log zerolog.Logger) {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	file := fs.String("file", "", "Path to a local return file")
	gcsURI := fs.String("gcs-uri", "", "GCS URI of a return file")
	bank := fs.String("bank", "", "Bank code to parse with, overriding the file header")
	pretty := fs.Bool("pretty", true, "Indent the JSON output")
	fs.Parse(os.Args[2:])

	source := *file
	if source == "" {
		source = *gcsURI
	}
	if source == "" {
		log.Fatal().Msg("Error: -file or -gcs-uri is required")
	}

	ctx, cancel := commandContext(log, cfg.Parsing.Timeout)
	defer cancel()

	var storage gcs.StorageService
	if gcs.IsGCSURI(source) {
		svc, err := gcsuploader.NewGCSStorageService(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create storage service")
		}
		defer svc.Close()
		storage = svc
	}

	data, err := gcs.ReadSource(ctx, storage, source)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read return file")
	}

	registry := banks.Default()
	var result *cnab.ParseResult
	if *bank != "" {
		profile, lookupErr := registry.Lookup(*bank)
		if lookupErr != nil {
			log.Fatal().Err(lookupErr).Msg("Unsupported bank")
		}
		result, err = pipeline.ParseBytesWithProfile(ctx, data, profile)
	} else {
		result, _, err = pipeline.ParseBytes(ctx, data, registry, cfg.Parsing.DefaultBank)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse return file")
	}

	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(result); err != nil {
		log.Fatal().Err(err).Msg("Failed to write JSON")
	}
}

func runIngest(cfg config.Config, log zerolog.Logger) {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	source := fs.String("source", "", "gs:// URI or local path of the return file")
	force := fs.Bool("force", false, "Reprocess a file already in the ledger")
	fs.Parse(os.Args[2:])

	if *source == "" {
		log.Fatal().Msg("Error: -source is required")
	}
	ctx, cancel := commandContext(log, cfg.Parsing.Timeout)
	defer cancel()

	var storage gcs.StorageService
	if gcs.IsGCSURI(*source) {
		svc, err := gcsuploader.NewGCSStorageService(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create storage service")
		}
		defer svc.Close()
		storage = svc
	}

	repo := newRepository(ctx, cfg, log)
	defer repo.Close()

	out, err := pipeline.IngestReturnFile(ctx, pipeline.Deps{
		Repo:        repo,
		Storage:     storage,
		Registry:    banks.Default(),
		DefaultBank: cfg.Parsing.DefaultBank,
	}, *source, pipeline.Options{Force: *force})
	if err != nil {
		log.Fatal().Err(err).Msg("Ingestion failed")
	}

	if out.Skipped {
		fmt.Printf("Already ingested as %s (use -force to reprocess).\n", out.FileID)
		return
	}
	fmt.Printf("Ingested %s: file %s, run %s, %d transactions.\n",
		*source, out.FileID, out.ParsingRunID, len(out.Result.Transactions))
}

func runUpload(cfg config.Config, log zerolog.Logger) {
	fs := flag.NewFlagSet("upload", flag.ExitOnError)
	bucketName := fs.String("bucket", cfg.GCP.Bucket, "GCS bucket name (or set GCS_BUCKET)")
	objectName := fs.String("object", "", "GCS object name (defaults to the inbox prefix plus the filename)")
	filePath := fs.String("file", "", "Path to local return file")
	fs.Parse(os.Args[2:])

	if *bucketName == "" || *filePath == "" {
		log.Fatal().Msg("Usage: cli upload -bucket NAME -file PATH")
	}

	if *objectName == "" {
		*objectName = path.Join(cfg.GCP.InboxPrefix, filepath.Base(*filePath))
	}

	ctx := logger.WithContext(context.Background(), log)

	storage, err := gcsuploader.NewGCSStorageService(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create storage service")
	}
	defer storage.Close()

	log.Info().
		Str("bucket", *bucketName).
		Str("object", *objectName).
		Str("file", *filePath).
		Msg("Uploading file to GCS")

	if err := storage.UploadFile(ctx, *bucketName, *objectName, *filePath); err != nil {
		log.Fatal().Err(err).Msg("Upload failed")
	}

	fmt.Printf("Uploaded %s to %s\n", *filePath, gcs.BuildURI(*bucketName, *objectName))
}

func runList(cfg config.Config, log zerolog.Logger) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	limit := fs.Int("limit", 20, "Maximum number of files to show")
	fs.Parse(os.Args[2:])

	ctx := logger.WithContext(context.Background(), log)
	repo := newRepository(ctx, cfg, log)
	defer repo.Close()

	files, err := repo.ListReturnFiles(ctx, *limit)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list return files")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FILE ID\tBANK\tFILE DATE\tSTATUS\tFILENAME")
	for _, f := range files {
		fileDate := ""
		if f.FileDate.Valid {
			fileDate = f.FileDate.Date.String()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", f.FileID, f.BankCode.StringVal, fileDate, f.ParsingStatus, f.OriginalFilename)
	}
	w.Flush()
}

func runInspect(cfg config.Config, log zerolog.Logger) {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	fileID := fs.String("file-id", "", "Return file ID to inspect")
	fs.Parse(os.Args[2:])

	if *fileID == "" {
		log.Fatal().Msg("Error: -file-id is required")
	}

	ctx := logger.WithContext(context.Background(), log)
	repo := newRepository(ctx, cfg, log)
	defer repo.Close()

	rows, err := repo.ListTransactionsByFile(ctx, *fileID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list transactions")
	}

	fmt.Printf("\n=== Transactions of %s (%d) ===\n", *fileID, len(rows))
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LINE\tBANK NUMBER\tOCC\tTYPE\tVALUE\tPAID\tDESCRIPTION")
	for _, row := range rows {
		s := row.ToSerializable()
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			row.LineNumber, row.BankNumber.StringVal, row.Occurrence, row.OccurrenceType,
			s["value"], s["paid_value"], row.OccurrenceDescription.StringVal)
		if row.RejectionReason.Valid {
			fmt.Fprintf(w, "\t\t\t\t\t\t  rejected: %s\n", row.RejectionReason.StringVal)
		}
	}
	w.Flush()
	fmt.Println()
}

func runDelete(cfg config.Config, log zerolog.Logger) {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	fileID := fs.String("file-id", "", "Return file ID to delete")
	yes := fs.Bool("yes", false, "Confirm the deletion")
	fs.Parse(os.Args[2:])

	if *fileID == "" {
		log.Fatal().Msg("Error: -file-id is required")
	}
	if !*yes {
		log.Fatal().Msg("Refusing to delete without -yes")
	}

	ctx := logger.WithContext(context.Background(), log)
	repo := newRepository(ctx, cfg, log)
	defer repo.Close()

	if err := repo.DeleteReturnFile(ctx, *fileID); err != nil {
		log.Fatal().Err(err).Msg("Delete failed")
	}
	fmt.Printf("Deleted return file %s.\n", *fileID)
}

// commandContext carries log and, when timeout is positive, a deadline.
func commandContext(log zerolog.Logger, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx := logger.WithContext(context.Background(), log)
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

func newRepository(ctx context.Context, cfg config.Config, log zerolog.Logger) *infraBQ.BigQueryLedgerRepository {
	if cfg.GCP.ProjectID == "" {
		log.Fatal().Msg("Error: GCP_PROJECT_ID is required")
	}
	repo, err := infraBQ.NewBigQueryLedgerRepository(ctx, infraBQ.Dataset{
		ProjectID: cfg.GCP.ProjectID,
		DatasetID: cfg.GCP.Dataset,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create repository")
	}
	return repo
}
