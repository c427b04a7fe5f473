// Package combinatorics computes exact binomial coefficients.
package combinatorics

import "math/big"

// Combination returns the number of ways to choose k items from n, exactly.
// The caller must ensure 0 <= k <= n; other inputs give meaningless results.
//
// At every step the running coefficient is multiplied before it is divided.
// The partial products c(i) = n(n-1)...(n-i+1)/i! are binomial coefficients
// themselves, so each division is exact.
func Combination(n, k int64) *big.Int {
	if n-k < k {
		k = n - k
	}
	if k == 0 {
		return big.NewInt(1)
	}
	c := big.NewInt(n)
	factor := new(big.Int)
	divisor := new(big.Int)
	for i := int64(2); i <= k; i++ {
		n--
		c.Mul(c, factor.SetInt64(n))
		c.Quo(c, divisor.SetInt64(i))
	}
	return c
}
