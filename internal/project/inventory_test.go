package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/FitPrint/internal/model"
)

func TestDefaultInventoryPath(t *testing.T) {
	path := DefaultInventoryPath()
	if filepath.Base(path) != "inventory.json" {
		t.Errorf("expected filename inventory.json, got %s", filepath.Base(path))
	}
	dir := filepath.Base(filepath.Dir(path))
	if dir != ".fitprint" {
		t.Errorf("expected parent dir .fitprint, got %s", dir)
	}
}

func TestSaveAndLoadInventory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test_inventory.json")

	inv := model.Inventory{
		Papers:     []model.PaperPreset{model.NewPaperPreset("Glossy 10x15", 102, 152, 0.25)},
		PrintSizes: []model.PrintSize{model.NewPrintSize("Passport", 35, 45)},
	}

	if err := SaveInventory(path, inv); err != nil {
		t.Fatalf("SaveInventory failed: %v", err)
	}

	loaded, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}

	if len(loaded.Papers) != 1 || loaded.Papers[0].Name != "Glossy 10x15" {
		t.Errorf("unexpected papers: %+v", loaded.Papers)
	}
	if loaded.Papers[0].PricePerSheet != 0.25 {
		t.Errorf("expected price 0.25, got %f", loaded.Papers[0].PricePerSheet)
	}
	if len(loaded.PrintSizes) != 1 || loaded.PrintSizes[0].Width != 35 {
		t.Errorf("unexpected print sizes: %+v", loaded.PrintSizes)
	}
}

func TestLoadInventory_CreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "inventory.json")

	inv, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}
	if len(inv.Papers) != len(model.PaperSizes) {
		t.Errorf("expected %d default papers, got %d", len(model.PaperSizes), len(inv.Papers))
	}
	if len(inv.PrintSizes) == 0 {
		t.Error("expected default print sizes")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("default inventory should have been saved: %v", err)
	}
}

func TestLoadInventory_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	if err := os.WriteFile(path, []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadInventory(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestImportInventory_MergesByID(t *testing.T) {
	existing := model.Inventory{
		Papers:     []model.PaperPreset{{ID: "p1", Name: "A4", Width: 210, Height: 297}},
		PrintSizes: []model.PrintSize{{ID: "s1", Name: "10x15", Width: 102, Height: 152}},
	}
	imported := model.Inventory{
		Papers: []model.PaperPreset{
			{ID: "p1", Name: "A4 duplicate", Width: 210, Height: 297},
			{ID: "p2", Name: "Roll cut", Width: 152, Height: 1000},
		},
		PrintSizes: []model.PrintSize{
			{ID: "s2", Name: "Passport", Width: 35, Height: 45},
			{ID: "s2", Name: "Passport again", Width: 35, Height: 45},
		},
	}

	path := filepath.Join(t.TempDir(), "import.json")
	data, err := json.Marshal(imported)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	merged, err := ImportInventory(path, existing)
	if err != nil {
		t.Fatalf("ImportInventory failed: %v", err)
	}

	if len(merged.Papers) != 2 {
		t.Fatalf("expected 2 papers, got %d", len(merged.Papers))
	}
	if merged.Papers[0].Name != "A4" {
		t.Errorf("existing paper should win, got %q", merged.Papers[0].Name)
	}
	if len(merged.PrintSizes) != 2 {
		t.Errorf("expected 2 print sizes, got %d", len(merged.PrintSizes))
	}
}

func TestImportInventory_MissingFile(t *testing.T) {
	existing := model.DefaultInventory()
	got, err := ImportInventory(filepath.Join(t.TempDir(), "nope.json"), existing)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if len(got.Papers) != len(existing.Papers) {
		t.Error("existing inventory should be returned unchanged")
	}
}
