package domain

// EstimateDelivery buckets a travel distance into a delivery estimate.
func EstimateDelivery(distanceKm float64) string {
	switch {
	case distanceKm < 100:
		return "1 day"
	case distanceKm < 1000:
		return "3 days"
	case distanceKm < 5000:
		return "5 days"
	default:
		return "7 days"
	}
}
