package blog

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	ogWidth         = 1200
	ogHeight        = 630
	ogPadding       = 80
	ogTitleSize     = 68
	ogFooterSize    = 30
	ogMaxTitleLines = 4
	ogMaxTitleRunes = 140
)

var (
	ogBackground = color.RGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff}
	ogForeground = color.RGBA{R: 0xfa, G: 0xfa, B: 0xfa, A: 0xff}
	ogMuted      = color.RGBA{R: 0xa3, G: 0xa3, B: 0xa3, A: 0xff}
	ogShade      = color.NRGBA{A: 0xb0}
)

// OGCard renders 1200x630 Open Graph preview images for page titles.
// It is safe for concurrent use; font faces are created per render.
type OGCard struct {
	siteName   string
	bold       *opentype.Font
	regular    *opentype.Font
	background *image.RGBA
}

// NewOGCard parses the bundled Go fonts. background may be nil; otherwise it
// is scaled to cover the card and darkened so the title stays legible.
func NewOGCard(siteName string, background image.Image) (*OGCard, error) {
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse title font: %w", err)
	}
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse footer font: %w", err)
	}
	card := &OGCard{siteName: siteName, bold: bold, regular: regular}
	if background != nil {
		card.background = coverImage(background, ogWidth, ogHeight)
		draw.Draw(card.background, card.background.Bounds(), image.NewUniform(ogShade), image.Point{}, draw.Over)
	}
	return card, nil
}

// LoadImage decodes a JPEG, PNG or GIF file.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return img, nil
}

// Render writes the card for title as PNG. An empty title renders the site name.
func (c *OGCard) Render(w io.Writer, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		title = c.siteName
	}
	if utf8.RuneCountInString(title) > ogMaxTitleRunes {
		title = string([]rune(title)[:ogMaxTitleRunes-1]) + "…"
	}

	titleFace, err := opentype.NewFace(c.bold, &opentype.FaceOptions{Size: ogTitleSize, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return fmt.Errorf("title face: %w", err)
	}
	defer titleFace.Close()
	footerFace, err := opentype.NewFace(c.regular, &opentype.FaceOptions{Size: ogFooterSize, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return fmt.Errorf("footer face: %w", err)
	}
	defer footerFace.Close()

	dst := image.NewRGBA(image.Rect(0, 0, ogWidth, ogHeight))
	if c.background != nil {
		draw.Copy(dst, image.Point{}, c.background, c.background.Bounds(), draw.Src, nil)
	} else {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(ogBackground), image.Point{}, draw.Src)
	}

	lines := wrapText(titleFace, title, ogWidth-2*ogPadding, ogMaxTitleLines)
	lineHeight := titleFace.Metrics().Height.Ceil() * 6 / 5
	y := ogPadding + titleFace.Metrics().Ascent.Ceil()
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(ogForeground), Face: titleFace}
	for _, line := range lines {
		d.Dot = fixed.P(ogPadding, y)
		d.DrawString(line)
		y += lineHeight
	}

	if c.siteName != "" {
		footer := &font.Drawer{Dst: dst, Src: image.NewUniform(ogMuted), Face: footerFace}
		footer.Dot = fixed.P(ogPadding, ogHeight-ogPadding)
		footer.DrawString(c.siteName)
	}

	return png.Encode(w, dst)
}

// wrapText breaks s into lines no wider than maxWidth pixels. Output is cut
// to maxLines, the last kept line ending in an ellipsis.
func wrapText(face font.Face, s string, maxWidth, maxLines int) []string {
	limit := fixed.I(maxWidth)
	var lines []string
	var current string
	for _, word := range strings.Fields(s) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if font.MeasureString(face, candidate) <= limit || current == "" {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	if len(lines) > maxLines {
		lines = lines[:maxLines]
		last := lines[maxLines-1]
		for last != "" && font.MeasureString(face, last+"…") > limit {
			_, size := utf8.DecodeLastRuneInString(last)
			last = last[:len(last)-size]
		}
		lines[maxLines-1] = strings.TrimSpace(last) + "…"
	}
	return lines
}

// coverImage scales src to fill w x h, cropping the overflow evenly.
func coverImage(src image.Image, w, h int) *image.RGBA {
	b := src.Bounds()
	var crop image.Rectangle
	if b.Dx()*h > b.Dy()*w {
		cw := b.Dy() * w / h
		x0 := b.Min.X + (b.Dx()-cw)/2
		crop = image.Rect(x0, b.Min.Y, x0+cw, b.Max.Y)
	} else {
		ch := b.Dx() * h / w
		y0 := b.Min.Y + (b.Dy()-ch)/2
		crop = image.Rect(b.Min.X, y0, b.Max.X, y0+ch)
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, draw.Src, nil)
	return dst
}
