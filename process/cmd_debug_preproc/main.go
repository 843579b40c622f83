package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"rejiscan/pkg/ocr"
)

func main() {
	in := flag.String("in", "", "receipt image to preprocess")
	out := flag.String("out", "/tmp/preproc.png", "where to write the processed PNG")
	flag.Parse()
	if *in == "" {
		log.Fatalf("-in required")
	}
	data, err := os.ReadFile(*in)
	if err != nil {
		log.Fatalf("read: %v", err)
	}
	processed, err := ocr.Preprocess(data, ocr.DefaultPreprocessOptions())
	if err != nil {
		log.Fatalf("preprocess: %v", err)
	}
	if err := os.WriteFile(*out, processed, 0644); err != nil {
		log.Fatalf("write: %v", err)
	}
	fmt.Printf("wrote %s (%d bytes)\n", *out, len(processed))
}
