package internal

// Unowned marks a byte that no capture group covers
const Unowned = -1

// OwnerArray maps every byte of a line to the capture group that paints it
type OwnerArray []int

// Annotate assigns an owner to every byte of a line of length lineLen.
//
// Matches are applied in collector order and, within a match, in ascending
// group order, so an inner group overwrites the bytes of its parent. A
// zero-length span owns nothing.
func Annotate(lineLen int, matches []Match) OwnerArray {
	owners := make(OwnerArray, lineLen)
	for i := range owners {
		owners[i] = Unowned
	}

	for _, m := range matches {
		for _, span := range m.Captures {
			for j := span.Start; j < span.End; j++ {
				owners[j] = span.Group
			}
		}
	}

	return owners
}
