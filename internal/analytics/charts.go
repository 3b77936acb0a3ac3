package analytics

import (
	"math"

	"github.com/pulseforge/pulseforge/internal/domain"
)

const (
	PieSize   = 144
	PieStroke = 14

	LineWidth   = 420
	LineHeight  = 180
	LinePadding = 18
	LineMaxOrgs = 8
)

// PieGeometry describes the active-user donut.
type PieGeometry struct {
	Size          float64
	Stroke        float64
	Radius        float64
	Circumference float64
	Ratio         float64
	Dash          float64
	Active        int64
	Quiet         int64
}

func Pie(active, total int64) PieGeometry {
	g := PieGeometry{Size: PieSize, Stroke: PieStroke, Active: active}
	g.Radius = (g.Size - g.Stroke) / 2
	g.Circumference = 2 * math.Pi * g.Radius
	if total > 0 {
		g.Ratio = math.Min(1, math.Max(0, float64(active)/float64(total)))
	}
	g.Dash = g.Ratio * g.Circumference
	g.Quiet = max(0, total-active)
	return g
}

type Point struct {
	X     float64
	Y     float64
	Label string
	Value int64
}

// LineGeometry is the active-users-per-organization line chart.
type LineGeometry struct {
	Width   float64
	Height  float64
	Padding float64
	MaxY    int64
	StepX   float64
	Points  []Point
}

// Line plots active_users_7d for the first LineMaxOrgs organizations.
func Line(orgs []domain.SystemOrganization) LineGeometry {
	top := orgs
	if len(top) > LineMaxOrgs {
		top = top[:LineMaxOrgs]
	}
	g := LineGeometry{Width: LineWidth, Height: LineHeight, Padding: LinePadding, MaxY: 1}
	for _, o := range top {
		g.MaxY = max(g.MaxY, o.ActiveUsers7d)
	}
	if len(top) > 1 {
		g.StepX = (g.Width - g.Padding*2) / float64(len(top)-1)
	}

	g.Points = make([]Point, 0, len(top))
	for i, o := range top {
		g.Points = append(g.Points, Point{
			X:     g.Padding + float64(i)*g.StepX,
			Y:     g.Height - g.Padding - float64(o.ActiveUsers7d)/float64(g.MaxY)*(g.Height-g.Padding*2),
			Label: domain.CoalesceStr(o.TenantName, o.TenantSlug),
			Value: o.ActiveUsers7d,
		})
	}
	return g
}
