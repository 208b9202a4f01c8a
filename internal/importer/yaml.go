package importer

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlOrder is the document layout of a YAML print order:
//
//	photos:
//	  - name: Beach
//	    width: 100
//	    height: 150
//	    copies: 2
//	    file: beach.jpg
//	    lock: true
//
// A bare list of photos is accepted as well.
type yamlOrder struct {
	Photos []yamlPhoto `yaml:"photos"`
}

type yamlPhoto struct {
	Name   string  `yaml:"name"`
	Label  string  `yaml:"label"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Copies *int    `yaml:"copies"`
	File   string  `yaml:"file"`
	Lock   bool    `yaml:"lock"`
}

// ImportYAML imports photos from a YAML print order. Relative image paths
// resolve against the order's directory.
func ImportYAML(path string) ImportResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open file: %v", err)}}
	}
	return importYAML(data, filepath.Dir(path))
}

// ImportYAMLData imports photos from YAML content. Relative image paths are
// used as given.
func ImportYAMLData(data []byte) ImportResult {
	return importYAML(data, "")
}

func importYAML(data []byte, baseDir string) ImportResult {
	result := ImportResult{}
	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	entries, err := decodeYAMLPhotos(data)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read YAML: %v", err))
		return result
	}
	if len(entries) == 0 {
		result.Errors = append(result.Errors, "No photos found")
		return result
	}

	for i, e := range entries {
		// Reuse the row parser so YAML and spreadsheets follow the same rules.
		row := []string{
			firstNonEmpty(e.Name, e.Label),
			formatSize(e.Width),
			formatSize(e.Height),
			"",
			e.File,
			"",
		}
		if e.Copies != nil {
			row[3] = fmt.Sprint(*e.Copies)
		}
		if e.Lock {
			row[5] = "yes"
		}
		mapping := ColumnMapping{Label: 0, Width: 1, Height: 2, Copies: 3, File: 4, Lock: 5}
		photo, errMsg, warning := parseRow(row, mapping, fmt.Sprintf("Photo %d", i+1), rowSource{baseDir: baseDir}, len(result.Photos))
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

func decodeYAMLPhotos(data []byte) ([]yamlPhoto, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return nil, nil
	}
	doc := root.Content[0]

	if doc.Kind == yaml.SequenceNode {
		var list []yamlPhoto
		if err := doc.Decode(&list); err != nil {
			return nil, err
		}
		return list, nil
	}

	var order yamlOrder
	if err := doc.Decode(&order); err != nil {
		return nil, err
	}
	return order.Photos, nil
}

func formatSize(v float64) string {
	if v == 0 {
		return ""
	}
	return fmt.Sprint(v)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
