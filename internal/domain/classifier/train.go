package classifier

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/okian/careerlens/internal/domain/features"
)

// Trainer fits a Bundle from labelled samples.
type Trainer struct {
	kind         string
	trees        int
	maxDepth     int
	minSplit     int
	seed         int64
	testFraction float64
	epochs       int
}

// NewTrainer returns a trainer with forest defaults.
func NewTrainer(opts ...Option) *Trainer {
	t := &Trainer{
		kind:         KindForest,
		trees:        50,
		maxDepth:     10,
		minSplit:     2,
		seed:         42,
		testFraction: 0.2,
		epochs:       300,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Train encodes labels, splits the data, fits the scaler and model, and
// reports held-out accuracy.
func (t *Trainer) Train(samples []Sample) (*Bundle, error) {
	if len(samples) == 0 {
		return nil, ErrEmptyDataset
	}
	interests := vocabulary(samples, func(s Sample) string { return s.Input.InterestDomain })
	careers := vocabulary(samples, func(s Sample) string { return s.Career })
	norm := features.NewNormalizer(interests)
	careerCode := make(map[string]int, len(careers))
	for i, c := range careers {
		careerCode[c] = i
	}

	x := make([][]float64, len(samples))
	y := make([]int, len(samples))
	for i, s := range samples {
		v, err := norm.Normalize(s.Input)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		x[i] = v.Slice()
		y[i] = careerCode[s.Career]
	}

	rng := rand.New(rand.NewSource(t.seed))
	perm := rng.Perm(len(samples))
	nTest := int(float64(len(samples)) * t.testFraction)
	if len(samples)-nTest < 1 {
		nTest = 0
	}
	trainX, trainY := pick(x, y, perm[nTest:])
	testX, testY := pick(x, y, perm[:nTest])

	scaler := FitScaler(trainX)
	for i := range trainX {
		trainX[i] = scaler.Transform(trainX[i])
	}
	for i := range testX {
		testX[i] = scaler.Transform(testX[i])
	}

	var m Model
	switch t.kind {
	case KindForest:
		m = t.fitForest(trainX, trainY, len(careers), rng)
	case KindSoftmax:
		m = t.fitSoftmax(trainX, trainY, len(careers))
	default:
		return nil, fmt.Errorf("%w: unknown model kind %q", ErrInvalidArtifact, t.kind)
	}

	evalX, evalY := testX, testY
	if len(evalX) == 0 {
		evalX, evalY = trainX, trainY
	}
	var correct int
	for i := range evalX {
		if c, _ := m.Predict(evalX[i]); c == evalY[i] {
			correct++
		}
	}

	return &Bundle{
		Model:     m,
		Scaler:    scaler,
		Interests: interests,
		Careers:   careers,
		Features:  FeatureNames(),
		Accuracy:  float64(correct) / float64(len(evalX)),
	}, nil
}

func (t *Trainer) fitForest(x [][]float64, y []int, k int, rng *rand.Rand) *Forest {
	d := len(x[0])
	mtry := int(math.Sqrt(float64(d)))
	if mtry < 1 {
		mtry = 1
	}
	f := &Forest{NClasses: k, Trees: make([]Tree, t.trees)}
	for i := range f.Trees {
		boot := make([]int, len(x))
		for j := range boot {
			boot[j] = rng.Intn(len(x))
		}
		b := &cart{x: x, y: y, k: k, d: d, mtry: mtry, maxDepth: t.maxDepth, minSplit: t.minSplit, rng: rng}
		b.grow(boot, 0)
		f.Trees[i] = Tree{Nodes: b.nodes}
	}
	return f
}

// fitSoftmax runs full-batch gradient descent on the cross-entropy loss.
func (t *Trainer) fitSoftmax(x [][]float64, y []int, k int) *Softmax {
	const rate = 0.5
	d := len(x[0])
	s := &Softmax{Weights: make([][]float64, k), Bias: make([]float64, k)}
	for c := range s.Weights {
		s.Weights[c] = make([]float64, d)
	}
	n := float64(len(x))
	for e := 0; e < t.epochs; e++ {
		gw := make([][]float64, k)
		for c := range gw {
			gw[c] = make([]float64, d)
		}
		gb := make([]float64, k)
		for i, row := range x {
			_, p := s.Predict(row)
			for c := range p {
				g := p[c]
				if c == y[i] {
					g--
				}
				gb[c] += g
				for j, v := range row {
					gw[c][j] += g * v
				}
			}
		}
		for c := range s.Weights {
			s.Bias[c] -= rate * gb[c] / n
			for j := range s.Weights[c] {
				s.Weights[c][j] -= rate * gw[c][j] / n
			}
		}
	}
	return s
}

// cart grows one gini-impurity decision tree.
type cart struct {
	x        [][]float64
	y        []int
	k, d     int
	mtry     int
	maxDepth int
	minSplit int
	rng      *rand.Rand
	nodes    []Node
}

func (b *cart) grow(idx []int, depth int) int {
	counts := make([]float64, b.k)
	for _, i := range idx {
		counts[b.y[i]]++
	}
	value := make([]float64, b.k)
	for c := range counts {
		value[c] = counts[c] / float64(len(idx))
	}
	pos := len(b.nodes)
	b.nodes = append(b.nodes, Node{Left: -1, Right: -1, Cover: float64(len(idx)), Value: value})

	if len(idx) < b.minSplit || (b.maxDepth > 0 && depth >= b.maxDepth) || pure(counts) {
		return pos
	}
	feat, thr, ok := b.split(idx, counts)
	if !ok {
		return pos
	}
	var left, right []int
	for _, i := range idx {
		if b.x[i][feat] <= thr {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	l := b.grow(left, depth+1)
	r := b.grow(right, depth+1)
	b.nodes[pos].Feature = feat
	b.nodes[pos].Threshold = thr
	b.nodes[pos].Left = l
	b.nodes[pos].Right = r
	return pos
}

// split searches mtry random features for the threshold with the lowest
// weighted gini impurity. ok is false when no split improves on the parent.
func (b *cart) split(idx []int, counts []float64) (feat int, thr float64, ok bool) {
	n := float64(len(idx))
	best := n * gini(counts, n)
	sorted := make([]int, len(idx))
	left := make([]float64, b.k)
	right := make([]float64, b.k)

	for _, f := range b.rng.Perm(b.d)[:b.mtry] {
		copy(sorted, idx)
		sort.SliceStable(sorted, func(a, c int) bool { return b.x[sorted[a]][f] < b.x[sorted[c]][f] })
		for c := range left {
			left[c] = 0
		}
		copy(right, counts)
		for i := 0; i < len(sorted)-1; i++ {
			cls := b.y[sorted[i]]
			left[cls]++
			right[cls]--
			lo, hi := b.x[sorted[i]][f], b.x[sorted[i+1]][f]
			if lo == hi {
				continue
			}
			nl := float64(i + 1)
			nr := n - nl
			imp := nl*gini(left, nl) + nr*gini(right, nr)
			if imp < best-1e-12 {
				best, feat, thr, ok = imp, f, (lo+hi)/2, true
			}
		}
	}
	return feat, thr, ok
}

func gini(counts []float64, n float64) float64 {
	if n == 0 {
		return 0
	}
	g := 1.0
	for _, c := range counts {
		p := c / n
		g -= p * p
	}
	return g
}

func pure(counts []float64) bool {
	nonzero := 0
	for _, c := range counts {
		if c > 0 {
			nonzero++
		}
	}
	return nonzero <= 1
}

func vocabulary(samples []Sample, key func(Sample) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, s := range samples {
		v := key(s)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func pick(x [][]float64, y []int, idx []int) ([][]float64, []int) {
	px := make([][]float64, len(idx))
	py := make([]int, len(idx))
	for i, j := range idx {
		px[i] = append([]float64(nil), x[j]...)
		py[i] = y[j]
	}
	return px, py
}
