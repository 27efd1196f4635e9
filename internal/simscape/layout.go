package simscape

import "strings"

// Positions lays out n blocks on the diagonal grid the diagrams use.
// Row k is anchored at (100+100k, 100+100k) and holds 2k+1 slots:
// slot 0 sits on the anchor, even slots step left in steps of 100,
// odd slots step up. Each entry is a Simulink position rectangle,
// [left top right bottom].
func Positions(n int) [][4]int {
	positions := make([][4]int, 0, n)
	for row := 0; len(positions) < n; row++ {
		for slot := 0; slot < 2*row+1 && len(positions) < n; slot++ {
			anchor := 100 + 100*row
			pos := [4]int{anchor, anchor, anchor + 30, anchor + 30}
			if slot%2 == 0 {
				pos[0] -= slot / 2 * 100
				pos[2] = pos[0] + 30
			} else {
				pos[1] -= (slot + 1) / 2 * 100
				pos[3] = pos[1] + 30
			}
			positions = append(positions, pos)
		}
	}
	return positions
}

// PortOrder ranks a decorated port name for canonical listing: output
// ports first, conserving terminals second, input ports last. OUT is
// tested before IN.
func PortOrder(name string) int {
	switch {
	case strings.Contains(name, "OUT"):
		return 0
	case strings.Contains(name, "IN"):
		return 2
	}
	return 1
}
