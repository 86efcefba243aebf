// Package scatter places random points inside a region subject to filters,
// used to seed procedural content like trees.
package scatter

import (
	"math"
	"math/rand"
	"time"

	"github.com/unixpickle/model3d/model2d"

	"github.com/voidshard/roadgraph/internal/geom"
)

// Scatterer places 'sites' within bounds. Every candidate must pass all
// configured filters before it's accepted.
type Scatterer struct {
	bounds geom.AABB
	sites  []geom.Vec2
	rng    *rand.Rand
	cfilt  []CandidateFilter

	// spacing grid, only set by MinDistance
	spacing float64
	cells   map[[2]int][]int

	// points from elsewhere we should keep clear of
	avoid     *model2d.CoordTree
	avoidDist float64
}

// New returns a new Scatterer over bounds
func New(bounds geom.AABB) *Scatterer {
	return &Scatterer{
		bounds: bounds,
		sites:  []geom.Vec2{},
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetSeed sets our internal RNG seed
func (s *Scatterer) SetSeed(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
}

// SetCandidateFilters sets filters that accept / reject a proposed site without
// reference to other currently set site(s).
func (s *Scatterer) SetCandidateFilters(f ...CandidateFilter) {
	s.cfilt = f
}

// Avoid rejects candidates within dist of any of pts. Pts are not sites.
func (s *Scatterer) Avoid(pts []geom.Vec2, dist float64) {
	if len(pts) == 0 {
		s.avoid = nil
		return
	}
	s.avoid = model2d.NewCoordTree(pts)
	s.avoidDist = dist
}

// addRandomSite places a site at random, assuming it obeys all current filters.
func (s *Scatterer) addRandomSite() (geom.Vec2, bool) {
	w := s.bounds.X.Hi - s.bounds.X.Lo
	h := s.bounds.Y.Hi - s.bounds.Y.Lo
	if s.bounds.IsEmpty() || w <= 0 || h <= 0 {
		return geom.Vec2{}, false
	}

	candidate := geom.V(s.bounds.X.Lo+s.rng.Float64()*w, s.bounds.Y.Lo+s.rng.Float64()*h)
	if !s.accepted(candidate) {
		return geom.Vec2{}, false
	}

	s.addSite(candidate)
	return candidate, true
}

// Fill makes up to attempts random placements and returns the sites added
func (s *Scatterer) Fill(attempts int) []geom.Vec2 {
	added := []geom.Vec2{}
	for i := 0; i < attempts; i++ {
		if p, ok := s.addRandomSite(); ok {
			added = append(added, p)
		}
	}
	return added
}

// accepted returns if the proposed site location is acceptable to our filters.
// Cheapest checks run first.
func (s *Scatterer) accepted(c geom.Vec2) bool {
	for _, fn := range s.cfilt {
		if !fn(c) {
			return false
		}
	}

	if s.spacing > 0 && s.crowded(c) {
		return false
	}

	if s.avoid != nil {
		near := s.avoid.KNN(1, c)
		if len(near) > 0 && near[0].Dist(c) < s.avoidDist {
			return false
		}
	}

	return true
}

// crowded returns if c is within spacing of a current site
func (s *Scatterer) crowded(c geom.Vec2) bool {
	cx, cy := s.cell(c)
	for i := cx - 1; i <= cx+1; i++ {
		for j := cy - 1; j <= cy+1; j++ {
			for _, idx := range s.cells[[2]int{i, j}] {
				if s.sites[idx].Dist(c) < s.spacing {
					return true
				}
			}
		}
	}
	return false
}

func (s *Scatterer) cell(c geom.Vec2) (int, int) {
	return int(math.Floor(c.X / s.spacing)), int(math.Floor(c.Y / s.spacing))
}

// addSite adds a site, no filters are run.
func (s *Scatterer) addSite(p geom.Vec2) {
	s.sites = append(s.sites, p)
	if s.spacing > 0 {
		x, y := s.cell(p)
		key := [2]int{x, y}
		s.cells[key] = append(s.cells[key], len(s.sites)-1)
	}
}
