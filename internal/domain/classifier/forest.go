package classifier

// Node is one CART node. Leaves have Left and Right set to -1.
type Node struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Cover     float64   `json:"cover"`
	Value     []float64 `json:"value"`
}

// Leaf reports whether n has no children.
func (n Node) Leaf() bool { return n.Left < 0 }

// Tree is a flat CART tree rooted at Nodes[0].
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Predict walks x to a leaf and returns its class distribution.
func (t Tree) Predict(x []float64) []float64 {
	i := 0
	for !t.Nodes[i].Leaf() {
		n := t.Nodes[i]
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
	return t.Nodes[i].Value
}

func (t Tree) expect(i int, x []float64, known []bool, class int) float64 {
	n := t.Nodes[i]
	if n.Leaf() {
		return n.Value[class]
	}
	if known[n.Feature] {
		if x[n.Feature] <= n.Threshold {
			return t.expect(n.Left, x, known, class)
		}
		return t.expect(n.Right, x, known, class)
	}
	l, r := t.Nodes[n.Left], t.Nodes[n.Right]
	total := l.Cover + r.Cover
	if total == 0 {
		return 0.5 * (t.expect(n.Left, x, known, class) + t.expect(n.Right, x, known, class))
	}
	return (l.Cover*t.expect(n.Left, x, known, class) + r.Cover*t.expect(n.Right, x, known, class)) / total
}

// Forest averages the class distributions of its trees.
type Forest struct {
	Trees    []Tree `json:"trees"`
	NClasses int    `json:"classes"`
}

// Predict implements Model.
func (f *Forest) Predict(x []float64) (int, []float64) {
	proba := make([]float64, f.NClasses)
	if len(f.Trees) == 0 {
		return 0, proba
	}
	for _, t := range f.Trees {
		for c, p := range t.Predict(x) {
			proba[c] += p
		}
	}
	for c := range proba {
		proba[c] /= float64(len(f.Trees))
	}
	return argmax(proba), proba
}

// Classes implements Model.
func (f *Forest) Classes() int { return f.NClasses }

// Kind implements Model.
func (f *Forest) Kind() string { return KindForest }

// Expectation implements ConditionalModel.
func (f *Forest) Expectation(x []float64, known []bool, class int) float64 {
	if len(f.Trees) == 0 {
		return 0
	}
	var sum float64
	for _, t := range f.Trees {
		sum += t.expect(0, x, known, class)
	}
	return sum / float64(len(f.Trees))
}
