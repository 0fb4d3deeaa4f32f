package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mehrguard/qrguard/internal/analyzer"
	"github.com/mehrguard/qrguard/internal/brand"
	"github.com/mehrguard/qrguard/internal/classifier"
	"github.com/mehrguard/qrguard/internal/config"
	"github.com/mehrguard/qrguard/internal/logger"
	"github.com/mehrguard/qrguard/internal/models"
)

// payloadResult is one line of CLI output.
type payloadResult struct {
	Payload    string                 `json:"payload"`
	Assessment *models.RiskAssessment `json:"assessment,omitempty"`
	Error      string                 `json:"error,omitempty"`
}

func main() {
	flags := ParseFlags()

	cfg, err := config.LoadEngineConfig(flags.ConfigFile)
	if err != nil {
		log.Fatalf("[FATAL] could not load config: %v", err)
	}

	zLogger, err := logger.New(cfg.LogConfig)
	if err != nil {
		log.Fatalf("[FATAL] could not initialize logger: %v", err)
	}

	sensitivity, err := models.ParseSensitivity(flags.Sensitivity)
	if err != nil {
		log.Fatalf("[FATAL] %v", err)
	}

	model, catalog, err := loadBundles(cfg)
	if err != nil {
		log.Fatalf("[FATAL] %v", err)
	}

	engine, err := analyzer.NewEngine(cfg, model, catalog, zLogger)
	if err != nil {
		log.Fatalf("[FATAL] could not construct engine: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	payloads, err := collectPayloads(flags)
	if err != nil {
		log.Fatalf("[FATAL] %v", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	if flags.Pretty {
		encoder.SetIndent("", "  ")
	}

	exitCode := 0
	for _, payload := range payloads {
		result := payloadResult{Payload: payload}
		assessment, analyzeErr := engine.Analyze(ctx, payload, sensitivity)
		switch {
		case errors.Is(analyzeErr, models.ErrUnparsableInput):
			result.Error = "no readable content"
		case analyzeErr != nil:
			result.Error = analyzeErr.Error()
			exitCode = 1
		default:
			result.Assessment = assessment
		}
		if err := encoder.Encode(result); err != nil {
			log.Fatalf("[FATAL] could not write result: %v", err)
		}
	}
	os.Exit(exitCode)
}

// loadBundles loads the model and brand catalog from configured paths,
// falling back to the shipped defaults.
func loadBundles(cfg *config.EngineConfig) (*classifier.ModelWeights, *brand.Catalog, error) {
	model := classifier.DefaultModelWeights()
	if path := cfg.AnalyzerConfig.ModelPath; path != "" {
		loaded, err := classifier.LoadModelWeights(path)
		if err != nil {
			return nil, nil, fmt.Errorf("could not load model bundle: %w", err)
		}
		model = loaded
	}

	catalog := brand.DefaultCatalog()
	if path := cfg.AnalyzerConfig.BrandCatalogPath; path != "" {
		loaded, err := brand.LoadCatalog(path)
		if err != nil {
			return nil, nil, fmt.Errorf("could not load brand catalog: %w", err)
		}
		catalog = loaded
	}

	return model, catalog, nil
}

// collectPayloads gathers payloads from the -payload flag and/or -file.
func collectPayloads(flags AppFlags) ([]string, error) {
	var payloads []string
	if flags.Payload != "" {
		payloads = append(payloads, flags.Payload)
	}
	if flags.PayloadFile != "" {
		file, err := os.Open(flags.PayloadFile)
		if err != nil {
			return nil, fmt.Errorf("could not open payload file: %w", err)
		}
		defer file.Close()

		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			payloads = append(payloads, line)
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("could not read payload file: %w", err)
		}
	}
	return payloads, nil
}
