// Package align computes word-level alignments between two texts.
//
// Tokens are maximal runs of non-whitespace. Tokens compare case-insensitively
// but segments always carry the original casing.
package align

import (
	"strings"
)

// Kind classifies a segment within an alignment.
type Kind int

const (
	KindSame Kind = iota
	KindAdded
	KindRemoved
)

func (k Kind) String() string {
	switch k {
	case KindSame:
		return "same"
	case KindAdded:
		return "added"
	case KindRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Segment is a single tagged token. Text carries the token followed by
// exactly one space so segments can be concatenated into a readable line.
type Segment struct {
	Text string `json:"text"`
	Kind Kind   `json:"kind"`
}

// Word returns the token without its trailing separator.
func (s Segment) Word() string {
	return strings.TrimSuffix(s.Text, " ")
}

// Result holds one segment sequence per input text.
type Result struct {
	Left  []Segment `json:"left"`
	Right []Segment `json:"right"`
}

// Tokenize splits s on runs of whitespace, discarding empty results.
func Tokenize(s string) []string {
	return strings.Fields(s)
}

// Align computes the word alignment of left and right. It never fails: empty or
// whitespace-only input yields an empty segment sequence on that side.
func Align(left, right string) Result {
	a := Tokenize(left)
	b := Tokenize(right)

	lcs := commonSubsequence(fold(a), fold(b))
	return mergeWalk(a, b, lcs)
}

func fold(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.ToLower(w)
	}
	return out
}

// commonSubsequence returns the folded LCS of a and b in forward order.
//
// The DP table lives in a flat arena indexed by i*(n+1)+j. When backtracking,
// ties between dp[i-1][j] and dp[i][j-1] move to dp[i-1][j], which treats the
// left token as removed before the right token as added.
func commonSubsequence(a, b []string) []string {
	m, n := len(a), len(b)
	if m == 0 || n == 0 {
		return nil
	}

	stride := n + 1
	dp := make([]int, (m+1)*stride)

	for i := 1; i <= m; i++ {
		row := i * stride
		prev := row - stride
		for j := 1; j <= n; j++ {
			if a[i-1] == b[j-1] {
				dp[row+j] = dp[prev+j-1] + 1
			} else {
				dp[row+j] = max(dp[prev+j], dp[row+j-1])
			}
		}
	}

	length := dp[m*stride+n]
	if length == 0 {
		return nil
	}

	lcs := make([]string, length)
	k := length
	i, j := m, n
	for i > 0 && j > 0 {
		switch {
		case a[i-1] == b[j-1]:
			k--
			lcs[k] = a[i-1]
			i--
			j--
		case dp[(i-1)*stride+j] >= dp[i*stride+j-1]:
			i--
		default:
			j--
		}
	}

	return lcs
}

// mergeWalk emits segments for a and b given their common subsequence.
func mergeWalk(a, b, lcs []string) Result {
	res := Result{
		Left:  make([]Segment, 0, len(a)),
		Right: make([]Segment, 0, len(b)),
	}

	i, j := 0, 0
	for _, common := range lcs {
		for i < len(a) && strings.ToLower(a[i]) != common {
			res.Left = append(res.Left, segment(a[i], KindRemoved))
			i++
		}
		for j < len(b) && strings.ToLower(b[j]) != common {
			res.Right = append(res.Right, segment(b[j], KindAdded))
			j++
		}
		res.Left = append(res.Left, segment(a[i], KindSame))
		res.Right = append(res.Right, segment(b[j], KindSame))
		i++
		j++
	}

	for ; i < len(a); i++ {
		res.Left = append(res.Left, segment(a[i], KindRemoved))
	}
	for ; j < len(b); j++ {
		res.Right = append(res.Right, segment(b[j], KindAdded))
	}

	return res
}

func segment(word string, kind Kind) Segment {
	return Segment{Text: word + " ", Kind: kind}
}
