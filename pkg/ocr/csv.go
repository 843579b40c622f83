package ocr

import (
	"encoding/csv"
	"io"
	"strconv"
)

// utf8BOM lets spreadsheet tools detect the encoding of the exported CSV.
const utf8BOM = "\uFEFF"

// WriteCSV exports a parse result: header 商品名,価格, one row per item and a
// trailing total row when a total was detected.
func WriteCSV(w io.Writer, res ParseResult) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"商品名", "価格"}); err != nil {
		return err
	}
	for _, it := range res.Items {
		if err := cw.Write([]string{it.Name, strconv.Itoa(it.Price)}); err != nil {
			return err
		}
	}
	if res.Total != nil {
		if err := cw.Write([]string{totalToken, strconv.Itoa(*res.Total)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
