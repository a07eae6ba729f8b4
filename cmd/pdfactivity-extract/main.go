// Headless driver: extracts, classifies and writes the Excel workbook
// without the interactive browser.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"pdfactivity/internal/classifier"
	"pdfactivity/internal/classifier/onnx"
	"pdfactivity/internal/classifier/remote"
	"pdfactivity/internal/config"
	"pdfactivity/internal/decoder"
	"pdfactivity/internal/domain"
	"pdfactivity/internal/export"
	"pdfactivity/internal/parser"
	"pdfactivity/internal/service"
)

// pageLogger reports parser progress on stderr when -verbose is set.
type pageLogger struct{}

func (pageLogger) OnPageProcessed(pageNumber, sentenceCount int) {
	log.Printf("page %d: %d sentences", pageNumber, sentenceCount)
}

func main() {
	_ = godotenv.Load()

	cfgPath := flag.String("config", "", "Path to YAML config file")
	outPath := flag.String("out", "", "Path for the Excel output (overrides config)")
	verbose := flag.Bool("verbose", false, "Log per-page progress")
	flag.Parse()
	inputs := flag.Args()
	if len(inputs) == 0 {
		fmt.Println("Usage: pdfactivity-extract [--config=config.yaml] [--out=activities.xlsx] file1.pdf [file2.pdf ...]")
		os.Exit(1)
	}

	var cfg *config.AppConfig
	var err error
	if *cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(*cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	out := *outPath
	if out == "" {
		out = cfg.Export.OutputPath
	}

	var cls domain.Classifier
	switch cfg.Classifier.Type {
	case "none", "":
		cls = classifier.None{}
	case "onnx":
		if cfg.Classifier.ONNX == nil {
			log.Fatalf("onnx classifier config missing")
		}
		model, err := onnx.New(onnx.Config{
			ModelPath:     cfg.Classifier.ONNX.ModelPath,
			TokenizerPath: cfg.Classifier.ONNX.TokenizerPath,
			LibraryPath:   cfg.Classifier.ONNX.LibraryPath,
			BatchSize:     cfg.Classifier.ONNX.BatchSize,
			MaxSeqLen:     cfg.Classifier.ONNX.MaxSeqLen,
		})
		if err != nil {
			log.Fatalf("onnx classifier init failed: %v", err)
		}
		defer model.Close()
		cls = model
	case "remote":
		if cfg.Classifier.Remote == nil {
			log.Fatalf("remote classifier config missing")
		}
		client, err := remote.NewClient(remote.Config{
			BaseURL:   cfg.Classifier.Remote.BaseURL,
			APIKeyEnv: cfg.Classifier.Remote.APIKeyEnv,
			Timeout:   time.Duration(cfg.Classifier.Remote.TimeoutSecs) * time.Second,
			BatchSize: cfg.Classifier.Remote.BatchSize,
		})
		if err != nil {
			log.Fatalf("remote classifier init failed: %v", err)
		}
		cls = client
	default:
		log.Fatalf("unknown classifier: %s", cfg.Classifier.Type)
	}

	opts := parser.Options{
		MinSentenceChars: cfg.Parser.MinSentenceChars,
		OnQualityIssue:   parser.QualityPolicy(cfg.Parser.OnQualityIssue),
		WithoutContext:   cfg.Parser.WithoutContext,
	}
	if *verbose {
		opts.Observer = pageLogger{}
	}
	p := parser.New(opts)

	status := decoder.Available()
	if !cfg.DecoderEnabled() {
		status = decoder.Unavailable("PDF decoding disabled in config")
	}

	svc := service.New(decoder.New(), status, p, cls)
	if err := svc.ProcessFiles(context.Background(), inputs); err != nil {
		log.Fatalf("extraction failed: %v", err)
	}

	data, err := export.Workbook(svc.Results(), svc.RunID())
	if err != nil {
		log.Fatalf("export failed: %v", err)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		log.Fatalf("failed to write %s: %v", out, err)
	}

	s := svc.Summary()
	fmt.Printf("run %s: %d sentences, %d activities (%.1f%%) -> %s\n",
		svc.RunID(), s.TotalSentences, s.Activities, s.ActivityPercentage, out)
}
