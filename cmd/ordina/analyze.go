package main

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tsawler/ordina"
	"github.com/tsawler/ordina/export"
	"github.com/tsawler/ordina/model"
	"github.com/tsawler/ordina/render"
)

//go:embed regions.schema.json
var regionsSchema []byte

var (
	analyzeFormat  string
	analyzeOut     string
	analyzePretty  bool
	analyzeBare    bool
	analyzeMinConf float64
	analyzeWorkers int
	analyzeOverlay bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <regions.json> [more.json...]",
	Short: "Analyze detected page regions into structured questions",
	Long: `Analyze reads one or more page-region files produced by a layout
detector, reconstructs each page's question structure, and writes the
result in the chosen format.

Each input file holds one page:

  {"number": 1, "width": 1000, "height": 1400, "regions": [...]}

Examples:
  ordina analyze page1.json                     # JSON to stdout
  ordina analyze --format csv page1.json        # CSV summary to stdout
  ordina analyze --out results/ pages/*.json    # one output file per page
  ordina analyze --overlay --out results/ page1.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}

		format, err := export.ParseFormat(viper.GetString("format"))
		if err != nil {
			return err
		}

		schema, err := compileRegionsSchema()
		if err != nil {
			return err
		}

		config := ordina.DefaultConfig()
		config.Recognizer.AllowBareNumbers = viper.GetBool("allow-bare-numbers")
		config.Recognizer.AcceptThreshold = viper.GetFloat64("min-confidence")
		config.Workers = viper.GetInt("workers")
		pipeline := ordina.NewWithConfig(config)

		exportConfig := export.DefaultConfig()
		exportConfig.Format = format
		exportConfig.PrettyPrint = analyzePretty
		exporter := export.NewExporterWithConfig(exportConfig)

		// Pages are independent, so files fan out across workers. Results
		// are buffered and emitted in argument order.
		outputs := make([][]byte, len(args))
		errs := make([]error, len(args))

		var wg sync.WaitGroup
		sem := make(chan struct{}, runtime.NumCPU())
		for i, path := range args {
			wg.Add(1)
			go func(i int, path string) {
				defer wg.Done()
				sem <- struct{}{}
				defer func() { <-sem }()
				if err := cmd.Context().Err(); err != nil {
					errs[i] = err
					return
				}
				outputs[i], errs[i] = analyzeFile(logger, pipeline, exporter, schema, format, path)
			}(i, path)
		}
		wg.Wait()

		for i, path := range args {
			if errs[i] != nil {
				return fmt.Errorf("%s: %w", path, errs[i])
			}
			if _, err := os.Stdout.Write(outputs[i]); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "json", "output format: json, jsonl, csv, tsv, html")
	analyzeCmd.Flags().StringVar(&analyzeOut, "out", "", "output directory (default: stdout)")
	analyzeCmd.Flags().BoolVar(&analyzePretty, "pretty", false, "indent JSON output")
	analyzeCmd.Flags().BoolVar(&analyzeBare, "allow-bare-numbers", false, "accept bare 2-3 digit numerals as question numbers")
	analyzeCmd.Flags().Float64Var(&analyzeMinConf, "min-confidence", 0.70, "minimum combined confidence for a question boundary")
	analyzeCmd.Flags().IntVar(&analyzeWorkers, "workers", 0, "assignment workers per page (0 = one per CPU)")
	analyzeCmd.Flags().BoolVar(&analyzeOverlay, "overlay", false, "also write a PNG overlay per page (requires --out)")

	viper.BindPFlag("format", analyzeCmd.Flags().Lookup("format"))
	viper.BindPFlag("allow-bare-numbers", analyzeCmd.Flags().Lookup("allow-bare-numbers"))
	viper.BindPFlag("min-confidence", analyzeCmd.Flags().Lookup("min-confidence"))
	viper.BindPFlag("workers", analyzeCmd.Flags().Lookup("workers"))
}

// pageInput is the wire form of a page-region file
type pageInput struct {
	Number  int           `json:"number"`
	Width   float64       `json:"width"`
	Height  float64       `json:"height"`
	Regions []regionInput `json:"regions"`
}

type regionInput struct {
	ID                    string   `json:"id"`
	Class                 string   `json:"class"`
	Box                   boxInput `json:"box"`
	DetectorConfidence    float64  `json:"detector_confidence"`
	Text                  string   `json:"text,omitempty"`
	TextConfidence        float64  `json:"text_confidence,omitempty"`
	Description           string   `json:"description,omitempty"`
	DescriptionConfidence float64  `json:"description_confidence,omitempty"`
}

type boxInput struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func compileRegionsSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("regions.schema.json", bytes.NewReader(regionsSchema)); err != nil {
		return nil, fmt.Errorf("loading input schema: %w", err)
	}
	schema, err := compiler.Compile("regions.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compiling input schema: %w", err)
	}
	return schema, nil
}

// loadPage validates and decodes one page-region file
func loadPage(schema *jsonschema.Schema, path string) (model.Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Page{}, err
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return model.Page{}, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(raw); err != nil {
		return model.Page{}, fmt.Errorf("input does not match the page-regions schema: %w", err)
	}

	var input pageInput
	if err := json.Unmarshal(data, &input); err != nil {
		return model.Page{}, fmt.Errorf("decoding page: %w", err)
	}

	page := model.Page{
		Number: input.Number,
		Width:  input.Width,
		Height: input.Height,
	}
	for _, r := range input.Regions {
		page.Regions = append(page.Regions, model.Region{
			ID:                    r.ID,
			Class:                 r.Class,
			BBox:                  model.NewBBox(r.Box.X, r.Box.Y, r.Box.Width, r.Box.Height),
			DetectorConfidence:    r.DetectorConfidence,
			Text:                  r.Text,
			TextConfidence:        r.TextConfidence,
			Description:           r.Description,
			DescriptionConfidence: r.DescriptionConfidence,
		})
	}
	return page, nil
}

// analyzeFile processes one page. Without --out it returns the export for
// the caller to emit in argument order; with --out it writes the output
// files itself and returns nil bytes.
func analyzeFile(
	logger *slog.Logger,
	pipeline *ordina.Pipeline,
	exporter *export.Exporter,
	schema *jsonschema.Schema,
	format export.Format,
	path string,
) ([]byte, error) {
	page, err := loadPage(schema, path)
	if err != nil {
		return nil, err
	}

	doc := pipeline.Analyze(page)

	logger.Info("page analyzed",
		"file", path,
		"page", page.Number,
		"questions", doc.TotalQuestions,
		"layout", doc.LayoutType,
		"columns", doc.ColumnCount(),
		"unassigned", len(doc.Unassigned),
	)
	for _, entry := range doc.Corrections.Logs {
		logger.Warn("sequence correction", "file", path, "kind", entry.Kind, "detail", entry.Message)
	}

	if analyzeOut == "" {
		out, err := exporter.ExportToString(doc)
		if err != nil {
			return nil, err
		}
		return []byte(out), nil
	}

	if err := os.MkdirAll(analyzeOut, 0755); err != nil {
		return nil, err
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	outPath := filepath.Join(analyzeOut, base+format.FileExtension())
	if err := exporter.ExportToFile(doc, outPath); err != nil {
		return nil, err
	}
	logger.Debug("wrote output", "file", outPath)

	if analyzeOverlay {
		overlayPath := filepath.Join(analyzeOut, base+".png")
		f, err := os.Create(overlayPath)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		canvas := render.New().Overlay(nil, page, doc)
		if err := render.WritePNG(f, canvas); err != nil {
			return nil, err
		}
		logger.Debug("wrote overlay", "file", overlayPath)
	}
	return nil, nil
}
