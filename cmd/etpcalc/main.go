// Command etpcalc runs a single forcing message through its model and prints
// the result event as JSON. It is meant for spot-checking model output and
// debugging forcing payloads without a broker.
//
// Usage:
//
//	go run ./cmd/etpcalc -in forcing.json
//	cat forcing.json | go run ./cmd/etpcalc
//
// Engine defaults come from the same environment variables the service uses;
// a .env file in the working directory is loaded if present.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/basinflow/etp-compute-service/internal/config"
	"github.com/basinflow/etp-compute-service/internal/domain"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	in := flag.String("in", "", "path to a forcing message JSON file (default: stdin)")
	pretty := flag.Bool("pretty", true, "indent the result JSON")
	flag.Parse()

	// Best effort: absence of a .env file is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	payload, err := readPayload(*in)
	if err != nil {
		return err
	}

	msg, err := domain.ParseForcingMessage(payload)
	if err != nil {
		return err
	}

	result, err := domain.Compute(msg, cfg.Defaults())
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result)
}

func readPayload(path string) ([]byte, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
