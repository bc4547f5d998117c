package position

// SquaredDistance returns (q.X-lat)^2 + (q.Y-lon)^2 in float32. No square
// root is taken; the ordering of squared distances matches the ordering of
// true Euclidean distances.
func SquaredDistance(q Query, r Record) float32 {
	dx := float32(q.X) - r.Latitude
	dy := float32(q.Y) - r.Longitude
	// explicit conversions keep the compiler from fusing into an FMA, so
	// equal inputs yield bit-identical distances on every platform.
	return float32(dx*dx) + float32(dy*dy)
}
