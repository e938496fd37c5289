// Command pcbinspect compares a board photo against a reference using a component manifest.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"pcb-inspector/config"
	app "pcb-inspector/internal/application"
	"pcb-inspector/internal/container"
	"pcb-inspector/internal/infrastructure/manifest"
	"pcb-inspector/internal/infrastructure/storage"
)

func main() {
	reference := flag.String("reference", "", "Path to the reference (golden) board image")
	candidate := flag.String("candidate", "", "Path to the board image under test")
	manifestPath := flag.String("manifest", "", "Path to the component manifest (JSON or YAML)")
	out := flag.String("out", "result.jpg", "Where to write the annotated image")
	threshold := flag.Int64("threshold", -1, "Override the difference threshold")
	verbose := flag.Bool("v", false, "Print the score of every component")
	flag.Parse()

	if *reference == "" || *candidate == "" || *manifestPath == "" {
		fmt.Println("Usage: pcbinspect -reference <golden> -candidate <test> -manifest <parts.json> [-out result.jpg]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *threshold >= 0 {
		cfg.Threshold = *threshold
	}

	refData := mustRead(*reference)
	candData := mustRead(*candidate)
	m, err := manifest.ParseFile(*manifestPath, mustRead(*manifestPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse manifest: %v\n", err)
		os.Exit(1)
	}

	inspector, err := container.NewInspector(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create inspector: %v\n", err)
		os.Exit(1)
	}
	c := container.New(storage.NewMemoryUserRepository(), storage.NewMemorySessionRepository(), inspector)

	res, err := c.InspectionService.Inspect(context.Background(), refData, candData, m)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Inspection failed: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*out, res.Annotated, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", *out, err)
		os.Exit(1)
	}

	printResult(res, *verbose)
	fmt.Printf("Annotated image written to %s\n", *out)
}

func printResult(res *app.InspectionOutput, verbose bool) {
	r := res.Result
	fmt.Printf("Image: %dx%d, checked %d, skipped %d\n", r.ImageWidth, r.ImageHeight, len(r.Components), len(r.Skipped))

	if verbose {
		for _, c := range r.Components {
			fmt.Printf("  %-12s %-8s score=%d rect=(%d,%d %dx%d)\n",
				c.Spec.Name, c.Status, c.Score, c.Rect.X, c.Rect.Y, c.Rect.Width, c.Rect.Height)
		}
		if r.Stats.Count > 0 {
			fmt.Printf("Scores: mean=%.0f stddev=%.0f max=%.0f\n", r.Stats.Mean, r.Stats.StdDev, r.Stats.Max)
		}
	}

	if len(r.Skipped) > 0 {
		fmt.Printf("Skipped (empty region): %s\n", strings.Join(r.Skipped, ", "))
	}
	if len(r.Missing) == 0 {
		fmt.Println("All components present")
		return
	}
	fmt.Printf("Missing: %s\n", strings.Join(r.Missing, ", "))
}

func mustRead(path string) []byte {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read %s: %v\n", path, err)
		os.Exit(1)
	}
	return data
}
