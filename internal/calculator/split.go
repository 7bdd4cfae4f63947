package calculator

// EqualShare splits total evenly across n participants with truncating division.
// remainder is what is left over and is owed by no one. n must be positive.
func EqualShare(total int64, n int) (share, remainder int64) {
	share = total / int64(n)
	return share, total - share*int64(n)
}
