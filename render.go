package roadgraph

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/colornames"

	"github.com/voidshard/roadgraph/internal/geom"
)

// ColourScheme defines how features of a map are coloured in debug renders.
type ColourScheme struct {
	Background    color.Color
	Intersections color.Color
	Trees         color.Color
	Lanes         map[LaneKind]color.Color
	Lots          map[LotKind]color.Color
	Buildings     map[BuildingKind]color.Color
}

// DefaultScheme returns a reasonable default ColourScheme.
func DefaultScheme() *ColourScheme {
	return &ColourScheme{
		Background:    colornames.Whitesmoke,
		Intersections: colornames.Dimgray,
		Trees:         colornames.Forestgreen,
		Lanes: map[LaneKind]color.Color{
			LaneDriving:  colornames.Dimgray,
			LaneBus:      colornames.Firebrick,
			LaneParking:  colornames.Darkgray,
			LaneSidewalk: colornames.Lightgray,
			LaneRail:     colornames.Saddlebrown,
		},
		Lots: map[LotKind]color.Color{
			LotUnassigned:  colornames.Palegreen,
			LotResidential: colornames.Lightsteelblue,
			LotCommercial:  colornames.Lightpink,
		},
		Buildings: map[BuildingKind]color.Color{
			BuildingHouse:       colornames.Steelblue,
			BuildingFarm:        colornames.Wheat,
			BuildingFactory:     colornames.Brown,
			BuildingSupermarket: colornames.Hotpink,
			BuildingBakery:      colornames.Gold,
		},
	}
}

// RenderOptions for Render. Scale is pixels per map unit.
type RenderOptions struct {
	Scale  float64
	Margin float64 // map units around the content
	Scheme *ColourScheme
}

// defaults fills in zero options
func (o *RenderOptions) defaults() {
	if o.Scale <= 0 {
		o.Scale = 2
	}
	if o.Margin <= 0 {
		o.Margin = 20
	}
	if o.Scheme == nil {
		o.Scheme = DefaultScheme()
	}
}

// canvas maps world co-ords onto a gg context
type canvas struct {
	ctx    *gg.Context
	origin geom.Vec2
	scale  float64
}

func (c *canvas) px(v geom.Vec2) (float64, float64) {
	return (v.X - c.origin.X) * c.scale, (v.Y - c.origin.Y) * c.scale
}

func (c *canvas) fillPolygon(pts []geom.Vec2, col color.Color) {
	if len(pts) < 3 {
		return
	}
	c.ctx.NewSubPath()
	for _, p := range pts {
		c.ctx.LineTo(c.px(p))
	}
	c.ctx.ClosePath()
	c.ctx.SetColor(col)
	c.ctx.Fill()
}

func (c *canvas) strokeLine(pts geom.Polyline, width float64, col color.Color) {
	if len(pts) < 2 {
		return
	}
	c.ctx.NewSubPath()
	for _, p := range pts {
		c.ctx.LineTo(c.px(p))
	}
	c.ctx.SetColor(col)
	c.ctx.SetLineWidth(math.Max(1, width*c.scale))
	c.ctx.SetLineCapButt()
	c.ctx.Stroke()
}

// Render draws the map for debugging. The image covers everything in the
// spatial map plus trees; an empty map renders a single margin sized tile.
func Render(m *Map, opts RenderOptions) image.Image {
	opts.defaults()

	m.mu.RLock()
	defer m.mu.RUnlock()

	bounds := m.spatial.Bounds()
	for _, t := range m.trees.Positions() {
		bounds = bounds.AddPoint(geom.Pt(t))
	}
	if bounds.IsEmpty() {
		bounds = geom.Centered(geom.V(0, 0), 0)
	}
	bounds = bounds.ExpandedByMargin(opts.Margin)

	w := int(math.Ceil((bounds.X.Hi - bounds.X.Lo) * opts.Scale))
	h := int(math.Ceil((bounds.Y.Hi - bounds.Y.Lo) * opts.Scale))

	c := &canvas{
		ctx:    gg.NewContext(w, h),
		origin: geom.BoxMin(bounds),
		scale:  opts.Scale,
	}
	scheme := opts.Scheme

	c.ctx.SetColor(scheme.Background)
	c.ctx.Clear()

	m.lots.Each(func(_ LotID, l *Lot) {
		col, ok := scheme.Lots[l.Kind]
		if ok {
			c.fillPolygon(l.Shape.Corners[:], col)
		}
	})

	m.lanes.Each(func(_ LaneID, l *Lane) {
		col, ok := scheme.Lanes[l.Kind]
		if ok {
			c.strokeLine(l.Points, l.Width, col)
		}
	})

	m.intersections.Each(func(_ IntersectionID, i *Intersection) {
		c.fillPolygon(i.Polygon.Points, scheme.Intersections)
	})

	m.buildings.Each(func(_ BuildingID, b *Building) {
		col, ok := scheme.Buildings[b.Kind]
		if ok {
			c.fillPolygon(b.Footprint.Corners[:], col)
		}
	})

	c.ctx.SetColor(scheme.Trees)
	for _, t := range m.trees.Positions() {
		x, y := c.px(t)
		c.ctx.DrawCircle(x, y, math.Max(1, opts.Scale))
	}
	c.ctx.Fill()

	return c.ctx.Image()
}

// RenderPNG renders the map to a PNG file
func RenderPNG(fpath string, m *Map, opts RenderOptions) error {
	return savePNG(fpath, Render(m, opts))
}
