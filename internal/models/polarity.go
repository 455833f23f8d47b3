package models

// Polarity represents the direction of a reaction.
type Polarity string

const (
	Like    Polarity = "like"
	Dislike Polarity = "dislike"
)

// IsDislike reports the value stored in the reaction document's dislike flag.
func (p Polarity) IsDislike() bool {
	return p == Dislike
}

// PolarityFromFlag converts the stored dislike flag back to a Polarity.
func PolarityFromFlag(dislike bool) Polarity {
	if dislike {
		return Dislike
	}
	return Like
}
