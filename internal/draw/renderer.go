package draw

import (
	"io"

	"github.com/mattn/go-runewidth"
	"github.com/tomz197/steady/internal/scene"
)

// dimOpacity is how much of the picture survives the pause overlay.
const dimOpacity = 0.35

// Renderer paints scene frames into a terminal, fitting the logical
// playfield into the window with its aspect ratio preserved.
type Renderer struct {
	cw       *ChunkWriter
	size     TermSizeFunc
	canvas   *Canvas
	logicalW float64
	logicalH float64
	maxCols  int
	maxRows  int

	lastCols int
	lastRows int
}

// NewRenderer creates a renderer writing to w. maxCols and maxRows cap the
// canvas size; zero means no cap.
func NewRenderer(w io.Writer, size TermSizeFunc, logicalW, logicalH float64, maxCols, maxRows int) *Renderer {
	if size == nil {
		size = DefaultTermSizeFunc
	}
	return &Renderer{
		cw:       NewChunkWriter(w, 0, 0),
		size:     size,
		canvas:   NewScaledCanvas(1, 1, logicalW, logicalH),
		logicalW: logicalW,
		logicalH: logicalH,
		maxCols:  maxCols,
		maxRows:  maxRows,
	}
}

// Fit returns the canvas size in cells and its 0-based offset that shows a
// logicalW x logicalH space undistorted inside a cols x rows terminal.
// Half blocks make a cell two pixels tall, so pixels are roughly square.
func Fit(cols, rows int, logicalW, logicalH float64, maxCols, maxRows int) (w, h, offCol, offRow int) {
	availCols, availRows := cols, rows
	if maxCols > 0 && availCols > maxCols {
		availCols = maxCols
	}
	if maxRows > 0 && availRows > maxRows {
		availRows = maxRows
	}

	h = availRows
	w = int(float64(2*h) * logicalW / logicalH)
	if w > availCols {
		w = availCols
		h = int(float64(w) * logicalH / logicalW / 2)
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	offCol = max(0, (cols-w)/2)
	offRow = max(0, (rows-h)/2)
	return w, h, offCol, offRow
}

// Render draws one frame: shapes on the canvas, the canvas to the terminal,
// then labels over it. Everything is flushed in one go.
func (r *Renderer) Render(f scene.Frame) error {
	cols, rows, err := r.size()
	if err != nil {
		return err
	}
	resized := cols != r.lastCols || rows != r.lastRows
	if resized {
		w, h, offCol, offRow := Fit(cols, rows, r.logicalW, r.logicalH, r.maxCols, r.maxRows)
		r.canvas.Resize(w, h)
		r.canvas.SetOffset(offCol, offRow)
		r.cw.SetOffset(offCol, offRow)
		r.lastCols, r.lastRows = cols, rows
		ClearScreen(r.cw)
	}

	r.canvas.Clear(scene.Background)
	for _, rc := range f.Rects {
		r.canvas.FillRect(rc.X, rc.Y, rc.W, rc.H, rc.Color)
	}
	for _, c := range f.Circles {
		r.canvas.FillCircle(c.X, c.Y, c.Radius, c.Color)
	}
	if f.Dim {
		r.canvas.Dim(scene.Background, dimOpacity)
	}

	r.canvas.Render(r.cw)
	if resized {
		r.canvas.RenderBorder(r.cw)
	}
	for _, l := range f.Labels {
		r.drawLabel(l)
	}
	r.cw.ResetColors()
	return r.cw.Flush()
}

func (r *Renderer) drawLabel(l scene.Label) {
	if l.Text == "" {
		return
	}
	col, row := r.canvas.LogicalToTerminal(l.X, l.Y)
	if row < 1 || row > r.canvas.TerminalHeight() {
		return
	}
	width := runewidth.StringWidth(l.Text)
	if l.Align == scene.AlignCenter {
		col -= width / 2
	}
	if col < 1 {
		col = 1
	}
	avail := r.canvas.TerminalWidth() - col + 1
	if avail <= 0 {
		return
	}
	text := l.Text
	if width > avail {
		text = runewidth.Truncate(text, avail, "")
	}

	// The cell under the label's middle decides its background.
	mid := col - 1 + runewidth.StringWidth(text)/2
	bg, ok := r.canvas.Pixel(mid, (row-1)*2)
	if !ok {
		bg = scene.Background
	}
	r.cw.MoveCursor(col, row)
	r.cw.SetColors(l.Color, bg)
	r.cw.WriteString(text)
}

// TerminalToLogical maps a mouse position to playfield coordinates.
func (r *Renderer) TerminalToLogical(col, row int) (x, y float64, ok bool) {
	return r.canvas.TerminalToLogical(col, row)
}

// Reset forces a full clear and re-layout on the next frame.
func (r *Renderer) Reset() {
	r.lastCols, r.lastRows = 0, 0
}
