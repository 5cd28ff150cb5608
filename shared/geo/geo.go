package geo

import (
	"math"

	"rackcity/shared/constant"
)

// Distance returns the great-circle distance in miles between two
// latitude/longitude points using the haversine formula. The SQL nearby
// query computes the same expression; both paths must agree on ordering.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := toRadians(lat1)
	phi2 := toRadians(lat2)
	dPhi := toRadians(lat2 - lat1)
	dLambda := toRadians(lon2 - lon1)

	a := math.Pow(math.Sin(dPhi/2), 2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Pow(math.Sin(dLambda/2), 2)

	return 2 * constant.EarthRadiusMiles * math.Asin(math.Sqrt(a))
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
