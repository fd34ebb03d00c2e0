// Package anim provides the quadratic transition curve that drives the
// circular screen reveal.
package anim

import "time"

// Channels is the number of animated outputs: centre x, centre y, radius.
const Channels = 3

// Points holds the values of one channel at t = 0, t = 0.5 and t = 1.
type Points [3]float64

type coefs struct {
	a, b, c float64
	// end values, returned as-is outside the open interval
	p0, p1 float64
}

// Curve evaluates f(t) = a·t² + b·t + c per channel, with t running from 0
// to 1 over Duration and clamped afterwards.
type Curve struct {
	coefs    [Channels]coefs
	duration time.Duration
	start    time.Time
}

// New solves the quadratic through the three control values of every channel.
func New(duration time.Duration, channels [Channels]Points) *Curve {
	c := &Curve{duration: duration}
	for i, p := range channels {
		c.coefs[i] = coefs{
			a:  2*p[0] - 4*p[1] + 2*p[2],
			b:  -3*p[0] + 4*p[1] - p[2],
			c:  p[0],
			p0: p[0],
			p1: p[2],
		}
	}
	return c
}

// Reveal is the default screen transition: a circle growing from below the
// bottom edge until it covers the whole view.
func Reveal(duration time.Duration) *Curve {
	return New(duration, [Channels]Points{
		{0.5, 0.5, 0.5},
		{-0.5, -0.2, 0.0},
		{0.0, 2.0, 3.0},
	})
}

// Start resets the animation clock.
func (c *Curve) Start(now time.Time) {
	c.start = now
}

// At evaluates every channel at elapsed time since Start.
func (c *Curve) At(elapsed time.Duration) [Channels]float64 {
	t := 1.0
	if c.duration > 0 && elapsed < c.duration {
		t = elapsed.Seconds() / c.duration.Seconds()
		if t < 0 {
			t = 0
		}
	}
	var out [Channels]float64
	for i, k := range c.coefs {
		switch {
		case t <= 0:
			out[i] = k.p0
		case t >= 1:
			out[i] = k.p1
		default:
			out[i] = k.a*t*t + k.b*t + k.c
		}
	}
	return out
}

// Current evaluates the curve at now.
func (c *Curve) Current(now time.Time) [Channels]float64 {
	return c.At(now.Sub(c.start))
}

// Done reports whether the curve has reached its final value.
func (c *Curve) Done(now time.Time) bool {
	return now.Sub(c.start) >= c.duration
}
