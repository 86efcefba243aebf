// Package line walks the integer cells crossed by a straight line.
package line

import (
	"image"
)

// Visitor is called for each cell on the line. Returning false stops the walk.
type Visitor func(x, y int) bool

// Walk visits every cell on the line a -> b in order, both ends included.
// Diagonal steps are taken where the line crosses a corner.
func Walk(a, b image.Point, fn Visitor) {
	x, y := a.X, a.Y
	dx, dy := abs(b.X-a.X), -abs(b.Y-a.Y)
	sx, sy := sign(b.X-a.X), sign(b.Y-a.Y)
	e := dx + dy

	for {
		if !fn(x, y) {
			return
		}
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * e
		if e2 >= dy { // step x
			e += dy
			x += sx
		}
		if e2 <= dx { // step y
			e += dx
			y += sy
		}
	}
}

// Thick returns the cells on the line a,b plus every cell within r cells of
// one of them, without repeats.
func Thick(a, b image.Point, r int) []image.Point {
	seen := map[image.Point]bool{}
	pts := []image.Point{}
	Walk(a, b, func(x, y int) bool {
		for i := x - r; i <= x+r; i++ {
			for j := y - r; j <= y+r; j++ {
				p := image.Pt(i, j)
				if seen[p] {
					continue
				}
				seen[p] = true
				pts = append(pts, p)
			}
		}
		return true
	})
	return pts
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
