package model

import "github.com/google/uuid"

// PaperPreset represents a reusable paper definition, such as a roll cut or a
// sheet size a print shop stocks.
type PaperPreset struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	PricePerSheet float64 `json:"price_per_sheet"`
}

// NewPaperPreset creates a new PaperPreset with a generated ID.
func NewPaperPreset(name string, width, height, price float64) PaperPreset {
	return PaperPreset{
		ID:            uuid.New().String()[:8],
		Name:          name,
		Width:         width,
		Height:        height,
		PricePerSheet: price,
	}
}

// ToPaper converts the preset into a Paper.
func (pp PaperPreset) ToPaper() Paper {
	p := MatchPaper(pp.Width, pp.Height)
	if p.Key == "custom" {
		p.Name = pp.Name
	}
	return p
}

// PrintSize represents a reusable print format, such as 10x15 or passport.
type PrintSize struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewPrintSize creates a new PrintSize with a generated ID.
func NewPrintSize(name string, width, height float64) PrintSize {
	return PrintSize{
		ID:     uuid.New().String()[:8],
		Name:   name,
		Width:  width,
		Height: height,
	}
}

// ApplyTo sets the photo's print size, turning the format to match the
// photo's own orientation.
func (ps PrintSize) ApplyTo(p *Photo) {
	w, h := ps.Width, ps.Height
	if (p.Width > p.Height) != (w > h) && p.Width != p.Height {
		w, h = h, w
	}
	p.Width = w
	p.Height = h
}

// Inventory holds the user's saved paper presets and print sizes.
type Inventory struct {
	Papers     []PaperPreset `json:"papers"`
	PrintSizes []PrintSize   `json:"print_sizes"`
}

// DefaultInventory returns an inventory populated with common defaults.
func DefaultInventory() Inventory {
	inv := Inventory{}
	for _, p := range PaperSizes {
		inv.Papers = append(inv.Papers, NewPaperPreset(p.Name, p.Width, p.Height, 0))
	}
	inv.PrintSizes = []PrintSize{
		NewPrintSize("Passport 35x45", 35, 45),
		NewPrintSize("Wallet 64x89", 64, 89),
		NewPrintSize("9x13", 89, 127),
		NewPrintSize("10x15", 102, 152),
		NewPrintSize("13x18", 127, 178),
		NewPrintSize("Square 100x100", 100, 100),
	}
	return inv
}

// FindPaperByID returns a pointer to the paper preset with the given ID, or nil.
func (inv *Inventory) FindPaperByID(id string) *PaperPreset {
	for i := range inv.Papers {
		if inv.Papers[i].ID == id {
			return &inv.Papers[i]
		}
	}
	return nil
}

// FindPrintSizeByID returns a pointer to the print size with the given ID, or nil.
func (inv *Inventory) FindPrintSizeByID(id string) *PrintSize {
	for i := range inv.PrintSizes {
		if inv.PrintSizes[i].ID == id {
			return &inv.PrintSizes[i]
		}
	}
	return nil
}

// PaperNames returns a list of paper preset names for UI dropdowns.
func (inv *Inventory) PaperNames() []string {
	names := make([]string, len(inv.Papers))
	for i, p := range inv.Papers {
		names[i] = p.Name
	}
	return names
}

// PrintSizeNames returns a list of print size names for UI dropdowns.
func (inv *Inventory) PrintSizeNames() []string {
	names := make([]string, len(inv.PrintSizes))
	for i, s := range inv.PrintSizes {
		names[i] = s.Name
	}
	return names
}

// FindPaperByName returns a pointer to the first paper preset with the given name, or nil.
func (inv *Inventory) FindPaperByName(name string) *PaperPreset {
	for i := range inv.Papers {
		if inv.Papers[i].Name == name {
			return &inv.Papers[i]
		}
	}
	return nil
}

// FindPrintSizeByName returns a pointer to the first print size with the given name, or nil.
func (inv *Inventory) FindPrintSizeByName(name string) *PrintSize {
	for i := range inv.PrintSizes {
		if inv.PrintSizes[i].Name == name {
			return &inv.PrintSizes[i]
		}
	}
	return nil
}
