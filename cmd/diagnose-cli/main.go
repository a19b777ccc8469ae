package main

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"yashubustudio/symptomcheck/diagnosis"
	"yashubustudio/symptomcheck/internal/logging"
	"yashubustudio/symptomcheck/internal/render"
	"yashubustudio/symptomcheck/internal/session"
)

const (
	statusOK         = "ok"
	statusNoSymptoms = "no_symptoms"
	statusNoMatch    = "no_match"
)

type cliOptions struct {
	configPath string
	kbPath     string
	inputPath  string
	outputPath string
	outputDir  string
	format     string
	exportKB   string
	inputOpts  diagnosis.QueryParseOptions
	stdout     bool
}

// outcome is the diagnosis of one input record.
type outcome struct {
	Index    string             `json:"index"`
	Symptoms string             `json:"symptoms"`
	Status   string             `json:"status"`
	Results  []diagnosis.Result `json:"results,omitempty"`
}

func main() {
	_ = godotenv.Load()
	opts, err := parseFlags()
	if err != nil {
		log.Fatalf("diagnose-cli: %v", err)
	}
	if err := run(opts); err != nil {
		log.Fatalf("diagnose-cli: %v", err)
	}
}

func parseFlags() (cliOptions, error) {
	var opts cliOptions
	flag.StringVar(&opts.configPath, "config", os.Getenv("SYMPTOMCHECK_CONFIG"), "Path to symptomcheck.json or .yaml (default: ./symptomcheck.json)")
	flag.StringVar(&opts.kbPath, "kb", os.Getenv("SYMPTOMCHECK_KB"), "YAML/JSON disease table replacing the built-in one")
	flag.StringVar(&opts.inputPath, "input", "", "Text/CSV/TSV file with one symptom query per line or row")
	flag.StringVar(&opts.outputPath, "output", "", "File to write results (default uses --output-dir/result_*.csv)")
	flag.StringVar(&opts.outputDir, "output-dir", "csv", "Directory where results are written when --output is omitted")
	flag.StringVar(&opts.format, "format", "csv", "Output format: csv or json")
	flag.StringVar(&opts.exportKB, "export-kb", "", "Write the active disease table to FILE (.yaml or .json) and exit")
	flag.StringVar(&opts.inputOpts.SymptomColumn, "symptom-column", "", "Column name or #index holding the symptoms")
	flag.StringVar(&opts.inputOpts.IndexColumn, "index-column", "", "Column name or #index holding the record id")
	flag.BoolVar(&opts.stdout, "stdout", false, "Print a result preview to STDOUT")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s --input FILE [options]\n       %s --export-kb FILE\n\n", filepath.Base(os.Args[0]), filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	opts.configPath = strings.TrimSpace(opts.configPath)
	opts.kbPath = strings.TrimSpace(opts.kbPath)
	opts.inputPath = strings.TrimSpace(opts.inputPath)
	opts.outputPath = strings.TrimSpace(opts.outputPath)
	opts.outputDir = strings.TrimSpace(opts.outputDir)
	opts.format = strings.ToLower(strings.TrimSpace(opts.format))
	opts.exportKB = strings.TrimSpace(opts.exportKB)

	if opts.format != "csv" && opts.format != "json" {
		flag.Usage()
		return opts, fmt.Errorf("unknown --format %q", opts.format)
	}
	if opts.inputPath == "" && opts.exportKB == "" {
		flag.Usage()
		return opts, errors.New("missing required --input file")
	}
	return opts, nil
}

func run(opts cliOptions) error {
	cfg, err := diagnosis.LoadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.kbPath != "" {
		cfg.KnowledgeBasePath = opts.kbPath
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	kb, err := diagnosis.LoadKnowledgeBase(cfg.KnowledgeBasePath, cfg.Connector)
	if err != nil {
		return err
	}
	if opts.exportKB != "" {
		if err := diagnosis.ExportKnowledgeBase(opts.exportKB, kb); err != nil {
			return err
		}
		fmt.Printf("Exported %d diseases to %s\n", kb.Len(), opts.exportKB)
		return nil
	}

	engine, err := diagnosis.NewEngine(kb, cfg, logger)
	if err != nil {
		return fmt.Errorf("init engine: %w", err)
	}
	records, err := loadRecords(cfg, opts.inputPath, opts.inputOpts)
	if err != nil {
		return err
	}

	outcomes := diagnoseAll(engine, records)
	logger.Info("batch diagnosed", zap.Int("records", len(records)), zap.String("input", opts.inputPath))

	outputPath, err := resolveOutputPath(opts.outputPath, opts.outputDir, opts.format)
	if err != nil {
		return err
	}
	if err := writeOutcomes(outputPath, opts.format, outcomes); err != nil {
		return err
	}
	fmt.Printf("Saved diagnoses to %s\n", outputPath)

	if opts.stdout {
		painter := render.NewPainter(render.ForMode(string(cfg.Color), render.DetectEnv(os.Stdout)))
		printSummary(os.Stdout, painter, outcomes)
	}
	return nil
}

// loadRecords applies the configured column candidates and reads the query file.
func loadRecords(cfg diagnosis.Config, path string, opts diagnosis.QueryParseOptions) ([]diagnosis.QueryRecord, error) {
	diagnosis.SetColumnCandidates(cfg.Columns)
	records, err := diagnosis.ParseQueryFileWithOptions(path, opts)
	if err != nil {
		return nil, fmt.Errorf("read input records: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("input file does not contain any queries")
	}
	return records, nil
}

func diagnoseAll(engine *diagnosis.Engine, records []diagnosis.QueryRecord) []outcome {
	out := make([]outcome, len(records))
	for i, rec := range records {
		o := outcome{Index: rec.Index, Symptoms: rec.Line, Status: statusOK}
		results, err := engine.Diagnose(rec.Symptoms)
		switch {
		case errors.Is(err, diagnosis.ErrEmptySymptomSet):
			o.Status = statusNoSymptoms
		case errors.Is(err, diagnosis.ErrNoMatch):
			o.Status = statusNoMatch
		default:
			o.Results = results
		}
		out[i] = o
	}
	return out
}

func resolveOutputPath(path, dir, format string) (string, error) {
	if path != "" {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("resolve output path: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
			return "", fmt.Errorf("create output directory: %w", err)
		}
		return absPath, nil
	}
	if dir == "" {
		dir = "csv"
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve output dir: %w", err)
	}
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	filename := fmt.Sprintf("result_%s.%s", time.Now().Format("20060102150405"), format)
	return filepath.Join(absDir, filename), nil
}

func writeOutcomes(path, format string, outcomes []outcome) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create result file: %w", err)
	}
	defer f.Close()
	if format == "json" {
		return writeJSON(f, outcomes)
	}
	return writeCSV(f, outcomes)
}

func writeJSON(w io.Writer, outcomes []outcome) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(outcomes); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}

// writeCSV emits one row per ranked disease; queries without results get a
// single row carrying their status.
func writeCSV(w io.Writer, outcomes []outcome) error {
	writer := csv.NewWriter(w)
	header := []string{"index", "symptoms", "status", "rank", "disease", "match_count", "specialist", "matched"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, o := range outcomes {
		if len(o.Results) == 0 {
			if err := writer.Write([]string{o.Index, o.Symptoms, o.Status, "", "", "", "", ""}); err != nil {
				return fmt.Errorf("write row %s: %w", o.Index, err)
			}
			continue
		}
		for rank, r := range o.Results {
			row := []string{
				o.Index,
				o.Symptoms,
				o.Status,
				strconv.Itoa(rank + 1),
				r.Disease,
				strconv.Itoa(r.MatchCount),
				r.Specialist,
				strings.Join(r.Matched, ";"),
			}
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("write row %s: %w", o.Index, err)
			}
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush result: %w", err)
	}
	return nil
}

func printSummary(w io.Writer, painter *render.Painter, outcomes []outcome) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "==== Diagnosis preview ====")
	for _, o := range outcomes {
		fmt.Fprintf(w, "#%s %s\n", o.Index, o.Symptoms)
		switch o.Status {
		case statusNoSymptoms:
			fmt.Fprintln(w, "    No symptoms entered.")
		case statusNoMatch:
			fmt.Fprintln(w, "    No matching disease found.")
		default:
			for _, r := range o.Results {
				fmt.Fprintf(w, "    %s\n", session.FormatResult(painter, r))
			}
		}
	}
}
