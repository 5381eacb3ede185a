package gongo

// GammasAccuracy is the minimum total weight the sampler still treats
// as "something to sample"; below it, a playout passes.
const GammasAccuracy = 1.0e-10

// Gammas is a read-only map from (Hash3x3, Player) to a non-negative
// sampling weight. A table from NewGammas, or after ResetToUniform,
// assigns every legal non-eye pattern weight 1.0 and everything else
// 0.0; a trained
// model can be loaded in its place without the Sampler caring.
type Gammas struct {
	w [][PlayerCount]float64
}

// NewGammas returns a table initialised to the uniform default.
func NewGammas() *Gammas {
	g := &Gammas{w: make([][PlayerCount]float64, HashCount)}
	g.ResetToUniform()
	return g
}

func (g *Gammas) ResetToUniform() {
	for raw := 0; raw < HashCount; raw++ {
		h := Hash3x3(raw)
		for pl := 0; pl < PlayerCount; pl++ {
			p := Player(pl)
			if h.IsLegal(p) && !h.IsEyelike(p) {
				g.w[raw][pl] = 1.0
			} else {
				g.w[raw][pl] = 0.0
			}
		}
	}
}

func (g *Gammas) Get(hash Hash3x3, pl Player) float64 { return g.w[hash][pl] }

// Set overrides a single entry, for callers loading a trained model.
func (g *Gammas) Set(hash Hash3x3, pl Player, weight float64) { g.w[hash][pl] = weight }
