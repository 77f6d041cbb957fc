// Package similarity computes the five string-similarity metrics used to rank
// reference candidates against a query name.
//
// The metrics follow the semantics of the thefuzz library:
//
//   - Ratio: normalized Indel similarity (2*LCS / total length) over the raw strings.
//   - PartialRatio: best Ratio of the shorter string against windows of the longer.
//   - TokenSortRatio: Ratio after processing, sorting and rejoining whitespace tokens.
//   - TokenSetRatio: best Ratio among the intersection/difference token strings.
//   - PartialTokenSortRatio: PartialRatio of the token-sorted strings.
//
// Every metric is an integer in [0, 100], rounded half to even. Token based
// metrics first run Process on their inputs; Ratio and PartialRatio compare
// the strings as given. Functions are pure and never fail: two empty inputs
// score 100 and one empty input scores 0, except TokenSetRatio which scores 0
// whenever either side has no tokens.
package similarity
