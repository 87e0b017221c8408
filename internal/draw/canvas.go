package draw

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/tomz197/steady/internal/scene"
)

// BlockUpperHalf is drawn in every cell: foreground is the top pixel, background the bottom.
const BlockUpperHalf = '▀'

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// Stays under a typical 1500 byte MTU for smooth SSH transmission.
const maxChunkSize = 1400

// Canvas is a color buffer with 2x vertical resolution using half-block
// characters: each terminal cell shows a top and a bottom pixel.
// Shapes are given in logical coordinates and scaled to pixels.
type Canvas struct {
	termWidth      int           // Canvas columns
	termHeight     int           // Canvas rows
	subPixelHeight int           // termHeight * 2
	pixels         []scene.Color // Flat slice: [y * termWidth + x]

	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // subPixelHeight / logicalHeight

	// 0-based terminal offsets of the canvas' top-left cell.
	offsetCol int
	offsetRow int

	renderBuf strings.Builder
	numBuf    [20]byte
}

// NewScaledCanvas creates a canvas of termWidth x termHeight cells showing a
// logicalWidth x logicalHeight coordinate space.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth < 1 {
		termWidth = 1
	}
	if termHeight < 1 {
		termHeight = 1
	}
	subPixelHeight := termHeight * 2
	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]scene.Color, subPixelHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}
	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// TerminalWidth returns the canvas column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the canvas row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// Clear paints every pixel with bg.
func (c *Canvas) Clear(bg scene.Color) {
	for i := range c.pixels {
		c.pixels[i] = bg
	}
}

// Pixel returns the color at pixel coordinates, or false when out of range.
func (c *Canvas) Pixel(x, y int) (scene.Color, bool) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return scene.Color{}, false
	}
	return c.pixels[y*c.termWidth+x], true
}

func (c *Canvas) setPixel(x, y int, col scene.Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = col
	}
}

// FillRect fills a logical rectangle.
func (c *Canvas) FillRect(x, y, w, h float64, col scene.Color) {
	x0 := int(math.Floor(x * c.scaleX))
	y0 := int(math.Floor(y * c.scaleY))
	x1 := int(math.Ceil((x + w) * c.scaleX))
	y1 := int(math.Ceil((y + h) * c.scaleY))
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.setPixel(px, py, col)
		}
	}
}

// FillCircle fills a logical disc. The disc becomes an ellipse in pixel space
// when the axes scale differently. Discs smaller than a pixel still set one.
func (c *Canvas) FillCircle(x, y, radius float64, col scene.Color) {
	cx, cy := x*c.scaleX, y*c.scaleY
	rx, ry := radius*c.scaleX, radius*c.scaleY
	if rx < 0.5 || ry < 0.5 {
		c.setPixel(int(math.Floor(cx)), int(math.Floor(cy)), col)
		return
	}

	yStart := int(math.Floor(cy - ry))
	yEnd := int(math.Ceil(cy + ry))
	for py := yStart; py <= yEnd; py++ {
		dy := (float64(py) + 0.5 - cy) / ry
		if dy < -1 || dy > 1 {
			continue
		}
		half := rx * math.Sqrt(1-dy*dy)
		xStart := int(math.Ceil(cx - half - 0.5))
		xEnd := int(math.Floor(cx + half - 0.5))
		for px := xStart; px <= xEnd; px++ {
			c.setPixel(px, py, col)
		}
	}
}

// Dim blends every pixel toward bg; opacity 1 leaves the canvas unchanged.
func (c *Canvas) Dim(bg scene.Color, opacity float64) {
	for i, p := range c.pixels {
		c.pixels[i] = scene.Fade(p, bg, opacity)
	}
}

// Render writes every cell of the canvas as a half block with the top pixel
// as foreground and the bottom pixel as background. Color escapes are only
// emitted when they change.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 8)

	for row := 0; row < c.termHeight; row++ {
		c.moveTo(row+1+c.offsetRow, 1+c.offsetCol)
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		var fg, bg scene.Color
		first := true
		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col]
			bottom := c.pixels[bottomOffset+col]
			if first || top != fg {
				c.writeColor(38, top)
				fg = top
			}
			if first || bottom != bg {
				c.writeColor(48, bottom)
				bg = bottom
			}
			first = false
			c.renderBuf.WriteRune(BlockUpperHalf)
		}
	}
	c.renderBuf.WriteString(resetColor)

	writeChunks(w, c.renderBuf.String())
}

func (c *Canvas) moveTo(row, col int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

func (c *Canvas) writeColor(layer int, col scene.Color) {
	c.renderBuf.WriteString(colorSGR(layer, col))
}

// RenderBorder draws a box around the canvas when there is room for it.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1
	hasV := c.offsetRow >= 1

	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	buf.WriteString(colorSGR(38, scene.Grey))
	buf.WriteString(colorSGR(48, scene.Background))
	line := strings.Repeat("─", c.termWidth)
	if hasV {
		if hasH {
			buf.WriteString(cursorTo(top, left) + "┌" + line + "┐")
			buf.WriteString(cursorTo(bottom, left) + "└" + line + "┘")
		} else {
			buf.WriteString(cursorTo(top, c.offsetCol+1) + line)
			buf.WriteString(cursorTo(bottom, c.offsetCol+1) + line)
		}
	}
	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			buf.WriteString(cursorTo(row, left) + "│" + cursorTo(row, right) + "│")
		}
	}
	buf.WriteString(resetColor)
	io.WriteString(w, buf.String())
}

// LogicalToTerminal converts logical coordinates to a 1-based canvas
// position (col, row). Offsets are not included; ChunkWriter adds them.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Floor(x * c.scaleX))
	py := int(math.Floor(y * c.scaleY))
	return px + 1, py/2 + 1
}

// TerminalToLogical converts a 1-based terminal cell, as reported by the
// mouse, to the logical point at the cell's center. ok is false outside the canvas.
func (c *Canvas) TerminalToLogical(col, row int) (x, y float64, ok bool) {
	cx := col - 1 - c.offsetCol
	cy := row - 1 - c.offsetRow
	if cx < 0 || cx >= c.termWidth || cy < 0 || cy >= c.termHeight {
		return 0, 0, false
	}
	x = (float64(cx) + 0.5) / c.scaleX
	y = (float64(cy)*2 + 1) / c.scaleY
	return x, y, true
}

func writeChunks(w io.Writer, data string) {
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		io.WriteString(w, chunk)
		data = data[len(chunk):]
	}
}
