package export

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/theirongolddev/optimscale/internal/model"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgpdf"
)

// PDFName is the default file name of the dashboard snapshot.
const PDFName = "OptimScale_Dashboard.pdf"

var (
	colHistory   = color.RGBA{R: 52, G: 152, B: 219, A: 255}
	colPredicted = color.RGBA{R: 231, G: 76, B: 60, A: 255}
	colNote      = color.RGBA{R: 120, G: 120, B: 120, A: 255}
)

// WritePDF renders one landscape page per chart of snap to path.
func WritePDF(path string, snap Snapshot) error {
	if len(snap.Charts) == 0 {
		return fmt.Errorf("writing pdf: snapshot has no charts")
	}

	canvas := vgpdf.New(11*vg.Inch, 8.5*vg.Inch)
	for i, c := range snap.Charts {
		if i > 0 {
			canvas.NextPage()
		}
		p, err := chartPlot(c, snap)
		if err != nil {
			return fmt.Errorf("plotting %s: %w", c.Spec.Key, err)
		}
		p.Draw(draw.New(canvas))
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating export dir: %w", err)
		}
	}
	f, err := os.Create(path) //nolint:gosec // user-chosen export path
	if err != nil {
		return fmt.Errorf("creating pdf: %w", err)
	}
	if _, err := canvas.WriteTo(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing pdf: %w", err)
	}
	return f.Close()
}

func chartPlot(c ChartSnapshot, snap Snapshot) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = c.Spec.Title
	if c.Variant != "" {
		p.Title.Text += " (" + c.Variant + ")"
	}
	p.X.Label.Text = fmt.Sprintf("%s - %s, snapshot %s", snap.RangeStart, snap.RangeEnd, snap.TakenAt.Format("2006-01-02 15:04"))
	if c.Fitted {
		p.Y.Label.Text = fmt.Sprintf("%s   R² %.3f", c.Model, c.RSquared)
	}
	p.BackgroundColor = color.White

	grid := plotter.NewGrid()
	grid.Vertical.Color = color.Gray{Y: 220}
	grid.Horizontal.Color = color.Gray{Y: 220}
	p.Add(grid)

	hist := xys(c.Historical, 0)
	if len(hist) > 0 {
		line, err := plotter.NewLine(hist)
		if err != nil {
			return nil, err
		}
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = colHistory
		p.Add(line)
		p.Legend.Add("historical", line)
	}

	if len(c.Predicted) > 0 {
		// Start the dashed tail at the anchor so the two segments join.
		var tail plotter.XYs
		if n := len(hist); n > 0 {
			tail = append(tail, hist[n-1])
		}
		tail = append(tail, xys(c.Predicted, len(c.Historical))...)
		line, err := plotter.NewLine(tail)
		if err != nil {
			return nil, err
		}
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = colPredicted
		line.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
		p.Add(line)
		p.Legend.Add("predicted", line)
	}

	if labels := noteLabels(c); labels != nil {
		p.Add(labels)
	}

	combined := append(append([]model.Point{}, c.Historical...), c.Predicted...)
	p.NominalX(model.Periods(combined)...)
	p.Legend.Top = true
	return p, nil
}

func xys(pts []model.Point, offset int) plotter.XYs {
	out := make(plotter.XYs, len(pts))
	for i, pt := range pts {
		out[i].X = float64(offset + i)
		out[i].Y = pt.Value
	}
	return out
}

// noteLabels places each annotation above its historical point.
func noteLabels(c ChartSnapshot) *plotter.Labels {
	var data plotter.XYLabels
	for _, a := range c.Annotations {
		i := model.IndexOf(c.Historical, a.Period)
		if i < 0 {
			continue
		}
		data.XYs = append(data.XYs, plotter.XY{X: float64(i), Y: c.Historical[i].Value})
		data.Labels = append(data.Labels, "* "+a.Note)
	}
	if len(data.Labels) == 0 {
		return nil
	}
	labels, err := plotter.NewLabels(data)
	if err != nil {
		return nil
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].Color = colNote
	}
	return labels
}
