package gamedata

import "github.com/gdamore/tcell/v2"

// ThemeDef is the colour scheme for the minefield, loaded from theme.json.
type ThemeDef struct {
	Hidden string   `json:"hidden"` // Unrevealed cells
	Blank  string   `json:"blank"`  // Revealed cells with no adjacent mines
	Mine   string   `json:"mine"`   // Mines shown after a loss
	Cursor string   `json:"cursor"` // Cursor highlight background
	Label  string   `json:"label"`  // Row letters and column numbers
	Digits []string `json:"digits"` // Colours for counts 1 through 8
}

// HiddenColor returns the colour for unrevealed cells.
func (t *ThemeDef) HiddenColor() tcell.Color { return colorOr(t.Hidden, tcell.ColorGray) }

// BlankColor returns the colour for revealed zero cells.
func (t *ThemeDef) BlankColor() tcell.Color { return colorOr(t.Blank, tcell.ColorGray) }

// MineColor returns the colour for mines.
func (t *ThemeDef) MineColor() tcell.Color { return colorOr(t.Mine, tcell.ColorRed) }

// CursorColor returns the cursor background colour.
func (t *ThemeDef) CursorColor() tcell.Color { return colorOr(t.Cursor, tcell.ColorYellow) }

// LabelColor returns the colour for axis labels.
func (t *ThemeDef) LabelColor() tcell.Color { return colorOr(t.Label, tcell.ColorWhite) }

// DigitColor returns the colour for an adjacent-mine count of n (1-8).
// Out-of-range counts and malformed entries fall back to white.
func (t *ThemeDef) DigitColor(n int) tcell.Color {
	if n < 1 || n > len(t.Digits) {
		return tcell.ColorWhite
	}
	return colorOr(t.Digits[n-1], tcell.ColorWhite)
}

// LoadTheme loads the colour scheme from the embedded theme.json file.
func LoadTheme() (*ThemeDef, error) {
	theme, err := Load[ThemeDef]("theme.json")
	if err != nil {
		return nil, err
	}
	return &theme, nil
}

// MustLoadTheme loads the colour scheme, panicking on error.
func MustLoadTheme() *ThemeDef {
	theme, err := LoadTheme()
	if err != nil {
		panic(err)
	}
	return theme
}
