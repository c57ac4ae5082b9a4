package domain

// RevenueAtRisk sums the fee amounts across a bucket's members,
// substituting fallbackFee for unknown or non-positive fees. the result
// is what the gym stands to lose if nobody in the bucket renews.
func RevenueAtRisk(members []ClassifiedMember, fallbackFee float64) float64 {
	var total float64
	for _, m := range members {
		total += m.Record.Fee().ChargeableOr(fallbackFee)
	}
	return total
}
