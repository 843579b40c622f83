package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"rejiscan/pkg/ocr"
)

// Parses saved OCR text without running an engine, useful for tuning the
// exclusion vocabulary against a logged raw_text blob.
func main() {
	f := flag.String("file", "", "raw OCR text file (default stdin)")
	flag.Parse()

	var data []byte
	var err error
	if *f == "" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(*f)
	}
	if err != nil {
		log.Fatalf("read: %v", err)
	}

	res := ocr.Parse(string(data), ocr.NewVocabulary())
	for _, it := range res.Items {
		fmt.Printf("item name=%q price=%d\n", it.Name, it.Price)
	}
	if res.Total != nil {
		fmt.Printf("total=%d\n", *res.Total)
	} else {
		fmt.Println("total=none")
	}
	fmt.Printf("formatted=%q\n", res.Formatted)
}
