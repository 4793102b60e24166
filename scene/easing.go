package scene

import "time"

// progress returns elapsed/d in [0, 1].
func progress(elapsed, d time.Duration) float64 {
	if d <= 0 || elapsed >= d {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	return float64(elapsed) / float64(d)
}

func lerp(from, to Position, t float64) Position {
	return Position{
		from[0] + (to[0]-from[0])*t,
		from[1] + (to[1]-from[1])*t,
	}
}

// jumpVelocity returns initial vertical velocity so that a body thrown
// from y0 under gravity lands at y1 after d.
func jumpVelocity(y0, y1 float64, d time.Duration, gravity float64) float64 {
	sec := d.Seconds()
	if sec <= 0 {
		return 0
	}
	return (y1-y0)/sec - 0.5*gravity*sec
}

// arc returns the position of a jump at elapsed. x moves linearly,
// y rises by initial velocity vy then falls by gravity.
func arc(from, to Position, vy, gravity float64, elapsed, d time.Duration) Position {
	t := elapsed.Seconds()
	return Position{
		from[0] + (to[0]-from[0])*progress(elapsed, d),
		from[1] + vy*t + 0.5*gravity*t*t,
	}
}
