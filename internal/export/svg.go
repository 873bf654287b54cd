package export

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/qcviz/internal/bloch"
	"github.com/san-kum/qcviz/internal/dist"
	"github.com/san-kum/qcviz/internal/viz"
)

const svgBackground = "#0a0a0a"

func svgHeader(sb *strings.Builder, width, height int) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, svgBackground))
}

// CanvasToSVG converts a braille canvas to SVG dots coloured by pen.
func CanvasToSVG(canvas *viz.Canvas, scale float64, pens map[viz.Pen]lipgloss.Color) string {
	if canvas == nil {
		return ""
	}

	w, h := canvas.Size()
	var sb strings.Builder
	svgHeader(&sb, int(float64(w)*scale), int(float64(h)*scale))

	dotRadius := scale * 0.4
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			fill := string(pens[canvas.Pens[row][col]])
			if fill == "" {
				fill = "#ffffff"
			}
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					x, y := col*2+dx, row*4+dy
					if !canvas.IsSet(x, y) {
						continue
					}
					sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, float64(x)*scale+scale/2, float64(y)*scale+scale/2, dotRadius, fill))
				}
			}
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// TrajectorySVG draws the x-z great circle of the Bloch sphere with one
// marker per vector, joined in order. Labels, when given, annotate the
// markers.
func TrajectorySVG(vs []bloch.Vec3, labels []string, size int, stroke string) string {
	if len(vs) == 0 {
		return ""
	}
	c := float64(size) / 2
	r := float64(size) * 0.38
	pt := func(v bloch.Vec3) (float64, float64) {
		return c + v.X*r, c - v.Z*r
	}

	var sb strings.Builder
	svgHeader(&sb, size, size)
	sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="#444466"/>
<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#444466" stroke-dasharray="4"/>
<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#444466" stroke-dasharray="4"/>
<text x="%.1f" y="%.1f" fill="#cccccc" font-family="monospace" font-size="12">|0⟩</text>
<text x="%.1f" y="%.1f" fill="#cccccc" font-family="monospace" font-size="12">|1⟩</text>
`, c, c, r, c-r, c, c+r, c, c, c-r, c, c+r, c+4, c-r-6, c+4, c+r+16))

	if len(vs) > 1 {
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke))
		for i, v := range vs {
			x, y := pt(v)
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	for i, v := range vs {
		x, y := pt(v)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="4" fill="%s"/>
`, x, y, stroke))
		if i < len(labels) {
			sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="#ffffff" font-family="monospace" font-size="11">%s</text>
`, x+7, y-5, html.EscapeString(labels[i])))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// HistogramSVG draws one bar per label on a [0, 1] scale.
func HistogramSVG(d dist.Distribution, labels []string, width, height int, fill string) string {
	if len(labels) == 0 {
		return ""
	}
	const margin = 24
	plotH := float64(height - 2*margin)
	slot := float64(width-2*margin) / float64(len(labels))

	var sb strings.Builder
	svgHeader(&sb, width, height)
	sb.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#888888"/>
`, margin, height-margin, width-margin, height-margin))
	for i, l := range labels {
		p := math.Max(0, math.Min(1, d.Get(l)))
		bh := p * plotH
		x := float64(margin) + float64(i)*slot + slot*0.15
		y := float64(height-margin) - bh
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
<text x="%.1f" y="%d" fill="#cccccc" font-family="monospace" font-size="11" text-anchor="middle">|%s⟩</text>
<text x="%.1f" y="%.1f" fill="#ffffff" font-family="monospace" font-size="10" text-anchor="middle">%.3f</text>
`, x, y, slot*0.7, bh, fill, x+slot*0.35, height-margin+14, l, x+slot*0.35, y-3, p))
	}
	sb.WriteString("</svg>")
	return sb.String()
}
