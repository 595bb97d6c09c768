package state

// Listing is the Go rendition of patience sort shown in the code panel.
// CodeLine values index into it.
var Listing = []string{
	"func patienceSort(values []int) []int {",
	"\tvar piles [][]int",
	"\tfor _, x := range values {",
	"\t\tidx := findTargetPile(x, piles)",
	"\t\tif idx == -1 {",
	"\t\t\tpiles = append(piles, []int{x})",
	"\t\t} else {",
	"\t\t\tpiles[idx] = append(piles[idx], x)",
	"\t\t}",
	"\t}",
	"\treturn reconstruct(piles)",
	"}",
}

// Listing line numbers highlighted by the step controller.
const (
	LineNone    = -1
	LineLoop    = 2
	LineSearch  = 3
	LineBranch  = 4
	LineNewPile = 5
	LineAppend  = 7
	LineReturn  = 10
)
