package core

// DefaultStoneHP is the hit points a stone starts with.
const DefaultStoneHP = 2

// StoneDamage lists the stones touched by one damage pass.
// Broken is always a subset of Hit. Each coordinate appears at most once per list.
type StoneDamage struct {
	Hit    []Coord
	Broken []Coord
}

// ApplyAdjacentStoneDamage deals one hit point of damage to every stone
// orthogonally adjacent to a cleared cell, once per cleared neighbor.
// A stone that drops to zero breaks and leaves an open cell behind.
func ApplyAdjacentStoneDamage(g *Grid, cleared []Coord) StoneDamage {
	var dmg StoneDamage
	hit := make(map[Coord]bool)

	for _, c := range cleared {
		for _, n := range c.Neighbors() {
			if !g.InBounds(n) {
				continue
			}
			cell := g.at(n)
			if !cell.Stone {
				continue
			}
			cell.StoneHP--
			if !hit[n] {
				hit[n] = true
				dmg.Hit = append(dmg.Hit, n)
			}
			if cell.StoneHP <= 0 {
				*cell = Cell{}
				dmg.Broken = append(dmg.Broken, n)
			}
		}
	}
	return dmg
}
