package levelgen

// layerBases are the per-type visual presets, cloned and jittered per level.
var layerBases = map[LayerType]LayerStyle{
	LayerLattice: {
		PrimaryColor:    "#4fc3f7",
		SecondaryColor:  "#b3e5fc",
		FogDensity:      0.015,
		ParticleDensity: 1.0,
		GeometryStyle:   "crystalline",
	},
	LayerMarrow: {
		PrimaryColor:    "#e57373",
		SecondaryColor:  "#ffccbc",
		FogDensity:      0.03,
		ParticleDensity: 1.0,
		GeometryStyle:   "organic",
	},
	LayerVoid: {
		PrimaryColor:    "#7e57c2",
		SecondaryColor:  "#311b92",
		FogDensity:      0.05,
		ParticleDensity: 1.0,
		GeometryStyle:   "fractured",
	},
}

var layerCycle = []LayerType{LayerLattice, LayerMarrow, LayerVoid}

// PartitionLayers splits the node list contiguously by index into layerCount
// groups of ceil(n/layerCount), cycling the three thematic types, and stamps
// each node with its layer id. Style jitter draws from the color stream so a
// level's look is pinned by its seed alongside its structure.
func PartitionLayers(rng *Rand, nodes []Node, layerCount int) []DimensionLayer {
	n := len(nodes)
	if layerCount < 1 {
		layerCount = 1
	}
	groupSize := (n + layerCount - 1) / layerCount

	layers := make([]DimensionLayer, 0, layerCount)
	for i := 0; i < layerCount; i++ {
		start := i * groupSize
		if start >= n {
			break
		}
		end := start + groupSize
		if end > n {
			end = n
		}

		style := layerBases[layerCycle[i%len(layerCycle)]]
		style.FogDensity *= rng.Range(0.8, 1.2)
		style.ParticleDensity *= rng.Range(0.5, 1.5)

		ids := make([]int, 0, end-start)
		for j := start; j < end; j++ {
			nodes[j].Layer = i
			ids = append(ids, nodes[j].ID)
		}

		layers = append(layers, DimensionLayer{
			ID:      i,
			Type:    layerCycle[i%len(layerCycle)],
			NodeIDs: ids,
			Style:   style,
		})
	}
	return layers
}
