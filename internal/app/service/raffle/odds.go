package raffle

import "math"

// ComputeWinProbability returns the probability that a participant holding
// userBids of totalBids raffle tickets wins at least one of numWinners draws.
//
// Each draw is modeled as sampling one ticket uniformly at random, so
// P(lose all) = ((total-user)/total)^numWinners. This is a with-replacement
// approximation of the true without-replacement odds.
//
// The second return value is false when the inputs make the probability not
// applicable (no bids in the round, or no participation by the user); callers
// suppress display in that case instead of showing 0%.
func ComputeWinProbability(totalBids, userBids, numWinners uint64) (float64, bool) {
	if totalBids == 0 || userBids == 0 {
		return 0, false
	}
	if numWinners == 0 {
		return 0, true
	}
	if userBids > totalBids {
		userBids = totalBids
	}

	loseRatio := float64(totalBids-userBids) / float64(totalBids)
	winProbability := 1 - math.Pow(loseRatio, float64(numWinners))

	// Clamp against floating-point drift so userBids == totalBids reads as
	// exactly 1 and nothing ever leaves [0, 1].
	if winProbability < 0 {
		winProbability = 0
	}
	if winProbability > 1 {
		winProbability = 1
	}
	return winProbability, true
}
