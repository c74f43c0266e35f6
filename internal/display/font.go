package display

import (
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/mutker/znfsd/internal/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

const fontDPI = 72

// LoadFace loads a TrueType or OpenType font, or the first face of a font
// collection, at size pixels. An empty path selects the embedded Go Regular
// face, which is proportional and carries the degree sign.
func LoadFace(path string, size float64) (font.Face, error) {
	errFactory := errors.New()

	var (
		data []byte
		err  error
	)
	if path == "" {
		data = goregular.TTF
	} else if data, err = os.ReadFile(path); err != nil {
		return nil, errFactory.Wrap(ErrFontLoad, err)
	}

	var f *opentype.Font
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttc", ".otc":
		coll, err := opentype.ParseCollection(data)
		if err != nil {
			return nil, errFactory.Wrap(ErrFontLoad, err)
		}
		if f, err = coll.Font(0); err != nil {
			return nil, errFactory.Wrap(ErrFontLoad, err)
		}
	default:
		if f, err = opentype.Parse(data); err != nil {
			return nil, errFactory.Wrap(ErrFontLoad, err)
		}
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     fontDPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, errFactory.Wrap(ErrFontLoad, err)
	}

	return face, nil
}
