package main

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"os"

	"rejiscan/models"
	"rejiscan/pkg/ocr"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const maxUploadBytes = 5 * 1024 * 1024

// pipeline and scanLog are wired in main (and replaced by tests).
var (
	pipeline *ocr.Pipeline
	scanLog  *FileScanLog
)

func setupRoutes(r *gin.Engine) {
	r.GET("/", healthHandler)
	r.POST("/scan", scanHandler)
	r.GET("/scans", listScansHandler)
	r.GET("/scans/:id", getScanHandler)
	r.GET("/scans/:id/csv", scanCSVHandler)
	r.GET("/logs/ocr", getScanLogHandler)
	r.GET("/logs/ocr/download", downloadScanLogHandler)
	r.DELETE("/logs/ocr", clearScanLogHandler)
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "receipt-ocr-api"})
}

// scanHandler accepts a multipart receipt image, runs the OCR pipeline and
// returns the structured result. The item list and total are extracted
// independently and may disagree; both are returned as-is.
func scanHandler(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "file missing"})
		return
	}
	if file.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "file too large (max 5MB)"})
		return
	}
	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "cannot read upload"})
		return
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "cannot read upload"})
		return
	}

	res, err := pipeline.Scan(c.Request.Context(), data, file.Filename)
	if err != nil {
		if errors.Is(err, ocr.ErrInvalidImage) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		// engine failure or empty output: the request fails, the caller may retry
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": err.Error()})
		return
	}

	resp := gin.H{
		"success":   true,
		"items":     res.Items,
		"total":     res.Total,
		"formatted": res.Formatted,
		"raw_text":  res.RawText,
	}
	if db != nil {
		if id, err := persistScan(file.Filename, res); err != nil {
			log.Warn().Err(err).Msg("scan persistence failed")
		} else {
			resp["id"] = id
		}
	}
	c.JSON(http.StatusOK, resp)
}

func persistScan(fileName string, res ocr.ParseResult) (uint, error) {
	scan := models.Scan{FileName: fileName, RawText: res.RawText, Formatted: res.Formatted}
	if res.Total != nil {
		t := int64(*res.Total)
		scan.Total = &t
	}
	for i, it := range res.Items {
		scan.Items = append(scan.Items, models.ScanItem{Position: i, Name: it.Name, Price: int64(it.Price)})
	}
	if err := db.Create(&scan).Error; err != nil {
		return 0, err
	}
	return scan.ID, nil
}

func listScansHandler(c *gin.Context) {
	if db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "persistence disabled"})
		return
	}
	var scans []models.Scan
	if err := db.Preload("Items").Order("id desc").Limit(100).Find(&scans).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, scans)
}

func getScanHandler(c *gin.Context) {
	if db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "persistence disabled"})
		return
	}
	var scan models.Scan
	if err := db.Preload("Items").First(&scan, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, scan)
}

// scanCSVHandler exports one persisted scan as a BOM-prefixed CSV so
// spreadsheet tools pick up the UTF-8 encoding.
func scanCSVHandler(c *gin.Context) {
	if db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "persistence disabled"})
		return
	}
	var scan models.Scan
	if err := db.Preload("Items").First(&scan, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	res := ocr.ParseResult{Items: make([]ocr.Item, 0, len(scan.Items))}
	for _, it := range scan.Items {
		res.Items = append(res.Items, ocr.Item{Name: it.Name, Price: int(it.Price)})
	}
	if scan.Total != nil {
		t := int(*scan.Total)
		res.Total = &t
	}
	var buf bytes.Buffer
	if err := ocr.WriteCSV(&buf, res); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "csv encode failed"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="receipt.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func getScanLogHandler(c *gin.Context) {
	text, err := scanLog.Read()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.String(http.StatusOK, text)
}

func downloadScanLogHandler(c *gin.Context) {
	if _, err := os.Stat(scanLog.Path()); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "log file does not exist"})
		return
	}
	c.FileAttachment(scanLog.Path(), "ocr.log")
}

func clearScanLogHandler(c *gin.Context) {
	if err := scanLog.Clear(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "log cleared"})
}
