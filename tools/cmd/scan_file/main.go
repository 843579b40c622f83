package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"rejiscan/pkg/ocr"
)

func main() {
	f := flag.String("file", "", "receipt image to scan")
	csv := flag.Bool("csv", false, "also print CSV export")
	flag.Parse()
	if *f == "" {
		log.Fatalf("-file required")
	}
	data, err := os.ReadFile(*f)
	if err != nil {
		log.Fatalf("read: %v", err)
	}
	p := ocr.NewPipeline(ocr.Tesseract{}, ocr.NewVocabulary(), nil)
	res, err := p.Scan(context.Background(), data, *f)
	if err != nil {
		log.Fatalf("scan: %v", err)
	}
	fmt.Printf("items=%d formatted=%q\n", len(res.Items), res.Formatted)
	if *csv {
		if err := ocr.WriteCSV(os.Stdout, res); err != nil {
			log.Fatalf("csv: %v", err)
		}
	}
}
