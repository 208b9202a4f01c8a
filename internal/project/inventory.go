package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/FitPrint/internal/model"
)

// DefaultInventoryPath returns the default file path for the inventory file.
// This is located at ~/.fitprint/inventory.json.
func DefaultInventoryPath() string {
	return filepath.Join(DefaultConfigDir(), "inventory.json")
}

// SaveInventory writes the inventory to the specified JSON file.
// It creates parent directories if they do not exist.
func SaveInventory(path string, inv model.Inventory) error {
	return writeJSON(path, inv)
}

// LoadInventory reads the inventory from the specified JSON file.
// If the file does not exist, it returns the default inventory and saves it.
func LoadInventory(path string) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			inv := model.DefaultInventory()
			if saveErr := SaveInventory(path, inv); saveErr != nil {
				return inv, saveErr
			}
			return inv, nil
		}
		return model.Inventory{}, err
	}
	var inv model.Inventory
	if err := json.Unmarshal(data, &inv); err != nil {
		return model.Inventory{}, err
	}
	return inv, nil
}

// LoadOrCreateInventory loads the inventory from the default path.
// If the file does not exist, it creates one with default entries.
func LoadOrCreateInventory() (model.Inventory, string, error) {
	path := DefaultInventoryPath()
	inv, err := LoadInventory(path)
	return inv, path, err
}

// ImportInventory imports an inventory from a user-specified JSON file,
// merging it with the existing inventory. Duplicate IDs are skipped.
func ImportInventory(path string, existing model.Inventory) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, err
	}
	var imported model.Inventory
	if err := json.Unmarshal(data, &imported); err != nil {
		return existing, err
	}
	return MergeInventory(existing, imported), nil
}

// MergeInventory appends the papers and print sizes of imported whose IDs
// are not yet in existing.
func MergeInventory(existing, imported model.Inventory) model.Inventory {
	paperIDs := make(map[string]bool, len(existing.Papers))
	for _, p := range existing.Papers {
		paperIDs[p.ID] = true
	}
	sizeIDs := make(map[string]bool, len(existing.PrintSizes))
	for _, s := range existing.PrintSizes {
		sizeIDs[s.ID] = true
	}

	for _, p := range imported.Papers {
		if !paperIDs[p.ID] {
			existing.Papers = append(existing.Papers, p)
			paperIDs[p.ID] = true
		}
	}
	for _, s := range imported.PrintSizes {
		if !sizeIDs[s.ID] {
			existing.PrintSizes = append(existing.PrintSizes, s)
			sizeIDs[s.ID] = true
		}
	}
	return existing
}
