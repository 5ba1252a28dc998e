// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lattice Contributors

package sqlitevec

import (
	"hash/fnv"
	"math"
	"strings"
)

// Vectorize maps text into a fixed-dimension term-frequency vector by
// hashing each lowercased token into a bucket, then L2-normalizing. The
// scheme is deterministic and local, so identical text always lands at
// distance zero from itself regardless of process or machine.
func Vectorize(text string, dims int) []float32 {
	vec := make([]float32, dims)
	tokens := strings.Fields(strings.ToLower(text))
	if len(tokens) == 0 {
		return vec
	}

	for _, token := range tokens {
		h := fnv.New32a()
		_, _ = h.Write([]byte(token))
		vec[int(h.Sum32())%dims]++
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		return vec
	}
	scale := float32(1 / math.Sqrt(norm))
	for i := range vec {
		vec[i] *= scale
	}
	return vec
}
