package scatter

import (
	"github.com/voidshard/roadgraph/internal/geom"
)

// CandidateFilter accepts or rejects a candidate point based purely on
// the point itself.
type CandidateFilter func(c geom.Vec2) bool

// MinDistance ensures that a candidate is at least `dist` away from every
// other site. Only sites in neighbouring grid cells are compared.
// Sites added before this call are not indexed, so call it first.
func (s *Scatterer) MinDistance(dist float64) {
	if dist <= 0 {
		s.spacing = 0
		s.cells = nil
		return
	}
	s.spacing = dist
	s.cells = map[[2]int][]int{}
	for i, p := range s.sites {
		x, y := s.cell(p)
		key := [2]int{x, y}
		s.cells[key] = append(s.cells[key], i)
	}
}
