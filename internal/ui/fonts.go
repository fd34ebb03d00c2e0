package ui

import (
	"fmt"
	"os"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Font caches faces of one font source by pixel size.
type Font struct {
	source *text.FontSource
	faces  map[float64]text.Face
}

func (f *Font) Face(size float64) text.Face {
	if face, ok := f.faces[size]; ok {
		return face
	}
	face := f.source.Face(size)
	f.faces[size] = face
	return face
}

func LoadFontFromBytes(data []byte) (*Font, error) {
	source, err := text.NewFontSource(data)
	if err != nil {
		return nil, err
	}
	return &Font{
		source: source,
		faces:  make(map[float64]text.Face),
	}, nil
}

func LoadFontFromFile(name string) (*Font, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return LoadFontFromBytes(data)
}

// Fonts are the two typefaces the screens use: Title for headings and
// values, Label for small captions.
type Fonts struct {
	Title *Font
	Label *Font
}

// DefaultFonts loads the embedded Go fonts.
func DefaultFonts() (*Fonts, error) {
	title, err := LoadFontFromBytes(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("load title font: %w", err)
	}
	label, err := LoadFontFromBytes(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("load label font: %w", err)
	}
	return &Fonts{Title: title, Label: label}, nil
}
