package main

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"

	"github.com/SomadSahoo/buem/buem"
)

/*
Run a demand calculation batch.

Args:

	building_paths: building definition JSON files, one per building
	weather_path: weather CSV file shared by the batch
	gains_paths: gains CSV files, one per building; empty means no
	             internal gains anywhere
	config_path: run configuration YAML file, empty uses the defaults
	output_dir: output directory for the result files
*/
func run(building_paths []string, weather_path string, gains_paths []string, config_path, output_dir string) {
	if _, err := os.Stat(output_dir); os.IsNotExist(err) {
		if err := os.Mkdir(output_dir, 0755); err != nil {
			log.Fatalf("create output directory `%s`: %v", output_dir, err)
		}
	}

	cfg := buem.DefaultRunConfig()
	if config_path != "" {
		var err error
		cfg, err = buem.LoadRunConfig(config_path)
		if err != nil {
			log.Fatal(err)
		}
	}

	log.Printf("loading weather data from `%s`", weather_path)
	w, err := buem.LoadWeatherFile(weather_path)
	if err != nil {
		log.Fatal(err)
	}

	if len(gains_paths) != 0 && len(gains_paths) != len(building_paths) {
		log.Fatalf("got %d gains files for %d buildings", len(gains_paths), len(building_paths))
	}

	items := make([]buem.BatchItem, 0, len(building_paths))
	for i, bp := range building_paths {
		log.Printf("loading building definition from `%s`", bp)
		bd, err := buem.LoadBuildingFile(bp)
		if err != nil {
			log.Fatal(err)
		}
		e, err := buem.NewBuildingEnvelope(bd)
		if err != nil {
			log.Fatal(err)
		}

		var g *buem.GainsSeries
		if len(gains_paths) != 0 {
			g, err = buem.LoadGainsFile(gains_paths[i])
			if err != nil {
				log.Fatal(err)
			}
		}
		items = append(items, buem.BatchItem{Envelope: e, Gains: g})
	}

	log.Printf("solving %d building(s) in %s mode", len(items), cfg.Mode)
	results := buem.RunBatch(items, w, cfg, nil)

	recorder := buem.NewRecorder()
	summaries := make([]buem.DemandSummary, 0, len(results))
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			continue
		}
		res.Sim.Record(recorder, res.Demand)
		summaries = append(summaries, res.Demand.Summary())
	}

	hourly_path := filepath.Join(output_dir, "result_hourly.csv")
	log.Printf("saving hourly results to `%s`", hourly_path)
	if err := recorder.WriteCSV(hourly_path); err != nil {
		log.Fatal(err)
	}

	summary_path := filepath.Join(output_dir, "result_summary.csv")
	log.Printf("saving summary to `%s`", summary_path)
	if err := buem.WriteSummaryCSV(summary_path, summaries); err != nil {
		log.Fatal(err)
	}

	if failed > 0 {
		log.Fatalf("%d of %d building(s) failed", failed, len(results))
	}
}

func main() {
	var building_paths []string
	pflag.StringSliceVarP(&building_paths, "input", "i", nil, "building definition JSON file(s)")

	var weather_path string
	pflag.StringVar(&weather_path, "weather", "", "weather CSV file")

	var gains_paths []string
	pflag.StringSliceVar(&gains_paths, "gains", nil, "gains CSV file(s), one per building")

	var config_path string
	pflag.StringVarP(&config_path, "config", "c", "", "run configuration YAML file")

	var output_dir string
	pflag.StringVarP(&output_dir, "output", "o", ".", "output directory")

	pflag.Parse()

	if len(building_paths) == 0 || weather_path == "" {
		pflag.Usage()
		os.Exit(2)
	}

	start := time.Now()

	run(building_paths, weather_path, gains_paths, config_path, output_dir)

	log.Printf("elapsed_time: %v", time.Since(start))
}
