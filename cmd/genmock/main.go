// Command genmock reads an underway CO2 CSV log and generates mock data
// fixtures for the ETL test suites. It uses the actual ETL domain package so
// the processed output matches real pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -csv data/mock/underway_sample.csv \
//	  -raw-out data/mock/underway_sample.json \
//	  -processed-out data/mock/underway_sample_processed.json
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/my-code-base/internal/domain"
	"github.com/jonboulle/clockwork"
	"gonum.org/v1/gonum/stat"
)

var baseDate = time.Date(2023, time.July, 14, 0, 0, 0, 0, time.UTC)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	csvPath := flag.String("csv", "", "underway CO2 CSV log")
	rawOut := flag.String("raw-out", "", "output path for the raw JSON fixture")
	processedOut := flag.String("processed-out", "", "output path for the processed JSON fixture")
	flag.Parse()

	if *csvPath == "" || *rawOut == "" || *processedOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -csv, -raw-out, -processed-out")
	}

	// Set a fixed clock for reproducible ProcessedAt timestamps.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2023, time.July, 15, 6, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	recs, observations, err := processCSV(*csvPath)
	if err != nil {
		return fmt.Errorf("processing %s: %w", *csvPath, err)
	}
	log.Printf("total: %d records", len(recs))

	if err := writeJSON(*rawOut, recs); err != nil {
		return fmt.Errorf("writing raw fixture: %w", err)
	}
	log.Printf("wrote raw fixture: %s", *rawOut)

	if err := writeJSON(*processedOut, observations); err != nil {
		return fmt.Errorf("writing processed fixture: %w", err)
	}
	log.Printf("wrote processed fixture: %s", *processedOut)

	printStats(observations)
	return nil
}

func processCSV(path string) ([]domain.RawRecord, []domain.Observation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("no data rows")
	}

	colIdx := map[string]int{}
	for i, h := range rows[0] {
		colIdx[strings.TrimSpace(h)] = i
	}

	recs := make([]domain.RawRecord, 0, len(rows)-1)
	observations := make([]domain.Observation, 0, len(rows)-1)

	for n, row := range rows[1:] {
		rec := domain.RawRecord{
			Time: get(row, colIdx, "time"),
			Air:  get(row, colIdx, "air"),
		}
		fields := []struct {
			col string
			dst **float64
		}{
			{"lat", &rec.Lat}, {"lon", &rec.Lon}, {"xco2_ppm", &rec.XCO2},
			{"p_equ", &rec.PEqu}, {"t_equ", &rec.TEqu}, {"sst", &rec.SST},
			{"salinity", &rec.Salinity}, {"conductivity", &rec.Conductivity},
		}
		for _, fld := range fields {
			v, err := getFloat(row, colIdx, fld.col)
			if err != nil {
				return nil, nil, fmt.Errorf("row %d: %w", n+2, err)
			}
			*fld.dst = v
		}
		recs = append(recs, rec)

		// Run the actual ETL transformation.
		rawJSON, err := json.Marshal(rec)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal record: %w", err)
		}
		parsed, err := domain.ParseRawEvent(domain.RawEvent{Value: rawJSON, Timestamp: baseDate})
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: %w", n+2, err)
		}
		enriched, err := domain.EnrichObservation(parsed)
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: %w", n+2, err)
		}
		observations = append(observations, enriched)
	}

	return recs, observations, nil
}

func get(row []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// getFloat returns nil for an empty or absent column.
func getFloat(row []string, idx map[string]int, col string) (*float64, error) {
	s := get(row, idx, col)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("column %s: %w", col, err)
	}
	return &v, nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(observations []domain.Observation) {
	qualityCounts := map[string]int{}
	flagCounts := map[string]int{}
	var fco2 []float64
	for i := range observations {
		o := &observations[i]
		qualityCounts[o.Quality]++
		for _, f := range o.Flags {
			flagCounts[f]++
		}
		if o.Quality != domain.QualityBad {
			fco2 = append(fco2, o.FCO2SST)
		}
	}

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Total: %d\n", len(observations))
	fmt.Printf("By quality: good=%d, questionable=%d, bad=%d\n",
		qualityCounts[domain.QualityGood], qualityCounts[domain.QualityQuestionable], qualityCounts[domain.QualityBad])

	flags := make([]string, 0, len(flagCounts))
	for f := range flagCounts {
		flags = append(flags, f)
	}
	slices.Sort(flags)
	fmt.Print("Flags:")
	for _, f := range flags {
		fmt.Printf(" %s=%d", f, flagCounts[f])
	}
	fmt.Println()

	if len(fco2) > 0 {
		mean, std := stat.MeanStdDev(fco2, nil)
		fmt.Printf("fCO2 at SST: min=%.2f max=%.2f mean=%.2f std=%.2f µatm\n",
			slices.Min(fco2), slices.Max(fco2), mean, std)
	}
	if len(observations) > 0 {
		first := observations[0]
		fmt.Printf("\nFirst record:\n")
		fmt.Printf("  ID: %s\n", first.ID)
		fmt.Printf("  Time: %s\n", first.Time.Format(time.RFC3339))
		fmt.Printf("  pCO2 equ: %.4f, pCO2 sst: %.4f, fCO2 sst: %.4f\n", first.PCO2Equ, first.PCO2SST, first.FCO2SST)
	}
}
