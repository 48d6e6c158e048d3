package model

import (
	"math"
	"math/big"
)

var hundred = big.NewRat(100, 1)

// Round2 rounds to two decimals, half to even, on the exact binary value of x.
// 113.125 rounds to 113.12 while 2.675 (stored just below) rounds to 2.67.
func Round2(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	r := new(big.Rat).SetFloat64(x)
	r.Mul(r, hundred)
	q, m := new(big.Int).QuoRem(r.Num(), r.Denom(), new(big.Int))
	twice := m.Abs(m)
	twice.Lsh(twice, 1)
	switch c := twice.Cmp(r.Denom()); {
	case c > 0, c == 0 && q.Bit(0) == 1:
		if r.Sign() < 0 {
			q.Sub(q, big.NewInt(1))
		} else {
			q.Add(q, big.NewInt(1))
		}
	}
	return float64(q.Int64()) / 100
}
