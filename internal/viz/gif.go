package viz

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var ErrNoFrames = errors.New("viz: no frames captured")

const (
	cellW = 8
	cellH = 16
	band  = 20
)

// Recorder rasterizes canvases into an animated GIF.
type Recorder struct {
	Theme   Theme
	delay   int
	palette color.Palette
	frames  []*image.Paletted
}

// NewRecorder records at fps frames per second. colors are the timeline
// palette entries the vectors may be drawn in.
func NewRecorder(theme Theme, fps int, colors []string) *Recorder {
	delay := 2
	if fps > 0 {
		delay = max(1, 100/fps)
	}
	pal := color.Palette{
		RGBA(theme.Background),
		RGBA(theme.Text),
		RGBA(theme.Muted),
		RGBA(theme.Secondary),
		RGBA(theme.Accent),
		RGBA(theme.Alert),
	}
	for _, c := range colors {
		pal = append(pal, RGBA(PaletteColor(c)))
	}
	return &Recorder{Theme: theme, delay: delay, palette: pal}
}

func (r *Recorder) Len() int { return len(r.frames) }

// Capture rasterizes c with the vector pen in vector, draws the labels and
// the title and caption bands, and appends the image.
func (r *Recorder) Capture(c *Canvas, vector lipgloss.Color, title, caption string, labels []Label) {
	imgW, imgH := c.Width*cellW, c.Height*cellH+2*band
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), r.palette)
	draw.Draw(img, img.Bounds(), image.NewUniform(r.palette[0]), image.Point{}, draw.Src)

	pens := r.Theme.Pens(vector)
	dotW, dotH := cellW/2, cellH/4
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			if c.Grid[row][col] == blank {
				continue
			}
			src := image.NewUniform(RGBA(pens[c.Pens[row][col]]))
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if !c.IsSet(col*2+dx, row*4+dy) {
						continue
					}
					x, y := col*cellW+dx*dotW, band+row*cellH+dy*dotH
					draw.Draw(img, image.Rect(x, y, x+dotW, y+dotH), src, image.Point{}, draw.Src)
				}
			}
		}
	}

	text := RGBA(r.Theme.Text)
	drawText(img, 6, band-6, title, text)
	drawText(img, 6, imgH-6, caption, RGBA(vector))
	for _, l := range labels {
		col := text
		if l.Color != "" {
			col = RGBA(l.Color)
		}
		drawText(img, l.Col*cellW, band+l.Row*cellH+cellH-3, l.Text, col)
	}
	r.frames = append(r.frames, img)
}

// Encode writes the animation, looping forever.
func (r *Recorder) Encode(w io.Writer) error {
	if len(r.frames) == 0 {
		return ErrNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	for _, f := range r.frames {
		anim.Image = append(anim.Image, f)
		anim.Delay = append(anim.Delay, r.delay)
	}
	return gif.EncodeAll(w, &anim)
}

func (r *Recorder) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

var asciiLabels = strings.NewReplacer("⟩", ">", "→", "->", "⟨", "<")

func drawText(dst draw.Image, x, y int, s string, c color.Color) {
	if s == "" {
		return
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(asciiLabels.Replace(s))
}
