// Package importer reads print orders from CSV, Excel and YAML files and
// builds photos from image files. It supports automatic delimiter detection,
// flexible column mapping, and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/FitPrint/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Photos   []model.Photo
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Label  int
	Width  int
	Height int
	Copies int
	File   int
	Lock   int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"label":  {"label", "name", "photo", "title", "description", "desc", "item"},
	"width":  {"width", "w", "width mm", "width (mm)"},
	"height": {"height", "h", "height mm", "height (mm)"},
	"copies": {"copies", "qty", "quantity", "count", "prints", "pcs", "amount"},
	"file":   {"file", "path", "image", "filename", "file name"},
	"lock":   {"lock", "locked", "lock orientation", "no rotate", "fixed"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or a default positional
// mapping (label, width, height, copies, file, lock) and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Label: -1, Width: -1, Height: -1, Copies: -1, File: -1, Lock: -1}
	slots := map[string]*int{
		"label":  &mapping.Label,
		"width":  &mapping.Width,
		"height": &mapping.Height,
		"copies": &mapping.Copies,
		"file":   &mapping.File,
		"lock":   &mapping.Lock,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				if slot := slots[role]; *slot == -1 {
					*slot = i
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Label: 0, Width: 1, Height: 2, Copies: 3, File: 4, Lock: 5}, false
	}
	return mapping, true
}

// parseLock converts a lock cell to a bool. It returns the value and whether
// the string was recognized.
func parseLock(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "1", "x", "locked":
		return true, true
	case "", "no", "n", "false", "0", "-":
		return false, true
	default:
		return false, false
	}
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseSize reads an optional size cell. Decimal commas are accepted.
func parseSize(s string) (float64, bool, error) {
	if s == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	return v, true, err
}

// rowSource carries the per-file context needed to parse a row.
type rowSource struct {
	prefix  string // "Line" or "Row"
	baseDir string // directory that relative image paths resolve against
}

// parseRow extracts a Photo from a row using the given column mapping.
// Returns the photo, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, src rowSource, photoCount int) (model.Photo, string, string) {
	label := getCell(row, mapping.Label)
	file := getCell(row, mapping.File)
	if file != "" && src.baseDir != "" && !filepath.IsAbs(file) {
		file = filepath.Join(src.baseDir, file)
	}
	if label == "" {
		if file != "" {
			label = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		} else {
			label = fmt.Sprintf("Photo %d", photoCount+1)
		}
	}

	widthStr := getCell(row, mapping.Width)
	width, hasWidth, err := parseSize(widthStr)
	if err != nil {
		return model.Photo{}, fmt.Sprintf("%s: Invalid width '%s'", rowLabel, widthStr), ""
	}
	heightStr := getCell(row, mapping.Height)
	height, hasHeight, err := parseSize(heightStr)
	if err != nil {
		return model.Photo{}, fmt.Sprintf("%s: Invalid height '%s'", rowLabel, heightStr), ""
	}

	if (hasWidth && width <= 0) || (hasHeight && height <= 0) {
		return model.Photo{}, fmt.Sprintf("%s: Width, height, and copies must be positive", rowLabel), ""
	}

	copies := 1
	if qtyStr := getCell(row, mapping.Copies); qtyStr != "" {
		copies, err = strconv.Atoi(qtyStr)
		if err != nil {
			return model.Photo{}, fmt.Sprintf("%s: Invalid copies '%s'", rowLabel, qtyStr), ""
		}
	}

	var photo model.Photo
	switch {
	case hasWidth && hasHeight:
		photo = model.NewPhoto(label, width, height, copies)
		photo.Path = file
	case file != "":
		// Missing sides follow the image's aspect ratio.
		photo, err = PhotoFromFile(file, width)
		if err != nil {
			return model.Photo{}, fmt.Sprintf("%s: %v", rowLabel, err), ""
		}
		if hasHeight && !hasWidth {
			photo.SetHeight(height)
		}
		photo.Name = label
		photo.Copies = copies
	case !hasWidth:
		return model.Photo{}, fmt.Sprintf("%s: Missing width value", rowLabel), ""
	default:
		return model.Photo{}, fmt.Sprintf("%s: Missing height value", rowLabel), ""
	}

	if photo.Width <= 0 || photo.Height <= 0 || copies <= 0 {
		return model.Photo{}, fmt.Sprintf("%s: Width, height, and copies must be positive", rowLabel), ""
	}

	var warning string
	if lockStr := getCell(row, mapping.Lock); lockStr != "" {
		lock, ok := parseLock(lockStr)
		if ok {
			photo.LockOrientation = lock
		} else {
			warning = fmt.Sprintf("%s: Unknown lock value '%s', orientation left free", rowLabel, lockStr)
		}
	}

	return photo, "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports photos from a CSV print order.
// It automatically detects the delimiter and maps columns by header names.
// Relative image paths resolve against the order's directory.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	records, err := readCSV(bytes.NewReader(data), delimiter)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, rowSource{prefix: "Line", baseDir: filepath.Dir(path)}, result.Warnings)
}

// ImportCSVFromReader imports photos from a CSV reader with a specific delimiter.
// Relative image paths are used as given.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	records, err := readCSV(reader, delimiter)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, rowSource{prefix: "Line"}, nil)
}

func readCSV(r io.Reader, delimiter rune) ([][]string, error) {
	csvReader := csv.NewReader(r)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1
	return csvReader.ReadAll()
}

// ImportExcel imports photos from an Excel (.xlsx) print order.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, rowSource{prefix: "Row", baseDir: filepath.Dir(path)}, nil)
}

// ImportFile picks the importer from the file extension: .csv/.tsv/.txt,
// .xlsx/.xlsm, .yaml/.yml, .dxf, or a single image.
func ImportFile(path string) ImportResult {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".tsv", ".txt":
		return ImportCSV(path)
	case ".xlsx", ".xlsm":
		return ImportExcel(path)
	case ".yaml", ".yml":
		return ImportYAML(path)
	case ".dxf":
		return ImportDXF(path)
	default:
		if IsImageFile(path) {
			return ImportImages([]string{path}, DefaultPhotoWidth)
		}
		return ImportResult{Errors: []string{fmt.Sprintf("Unsupported file type '%s'", ext)}}
	}
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into photos.
func importFromRows(rows [][]string, src rowSource, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		// Sizes may come from the image files instead.
		if mapping.File == -1 {
			missing := []string{}
			if mapping.Width == -1 {
				missing = append(missing, "Width")
			}
			if mapping.Height == -1 {
				missing = append(missing, "Height")
			}
			if len(missing) > 0 {
				result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
				return result
			}
		}
	} else if len(rows[0]) >= 3 {
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
			// Unrecognized header: skip it but keep positional mapping
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", src.prefix, i+1)
		photo, errMsg, warning := parseRow(row, mapping, rowLabel, src, len(result.Photos))

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Photos = append(result.Photos, photo)
	}

	return result
}
