package domain

// Sizes lists the product sizes in display order.
var Sizes = []string{"5ml", "10ml", "100ml"}

var vialsPerPack = map[string]int64{
	"5ml":   5,
	"10ml":  5,
	"100ml": 1,
}

// VialsPerPack returns the vial multiplier for a size. Unknown sizes
// count one vial per pack.
func VialsPerPack(size string) int64 {
	if m, ok := vialsPerPack[size]; ok {
		return m
	}
	return 1
}
