package chunk

// aoTable maps the occupancy of a face-corner's two edge neighbors and its
// diagonal neighbor to an ambient-occlusion level in [0,3] (3 = fully lit).
// Index bits: bit0 = side1 solid, bit1 = side2 solid, bit2 = corner solid.
// When both edge neighbors are solid the corner is forced maximally dark
// regardless of the diagonal block, matching the classic Minecraft-style
// vertex AO rule (two blocking edges fully enclose the corner).
var aoTable = [8]uint8{
	3, // 000: nothing solid
	2, // 001: side1 only
	2, // 010: side2 only
	0, // 011: side1 + side2, forced dark
	2, // 100: corner only
	1, // 101: side1 + corner
	1, // 110: side2 + corner
	0, // 111: side1 + side2 + corner, forced dark
}

func aoIndex(side1, side2, corner bool) int {
	i := 0
	if side1 {
		i |= 1
	}
	if side2 {
		i |= 2
	}
	if corner {
		i |= 4
	}
	return i
}

// vertexAO looks up the AO level for one face corner.
func vertexAO(side1, side2, corner bool) uint8 {
	if side1 && side2 {
		return 0
	}
	return aoTable[aoIndex(side1, side2, corner)]
}
