package code

import (
	"math/rand/v2"
	"strconv"
)

const (
	minCode = 1000
	maxCode = 9999
)

// Length of every generated code.
const Length = 4

func GenerateRandom() string {
	return strconv.Itoa(minCode + rand.IntN(maxCode-minCode+1))
}

// IsValid reports whether s has the shape of a generated code.
func IsValid(s string) bool {
	n, err := strconv.Atoi(s)
	if err != nil || len(s) != Length {
		return false
	}
	return n >= minCode && n <= maxCode
}
