package main

import (
	"math"
	"math/rand"
)

type vector [3]float64

func cross(v1, v2 vector) vector {
	return vector{
		v1[1]*v2[2] - v1[2]*v2[1],
		v1[2]*v2[0] - v1[0]*v2[2],
		v1[0]*v2[1] - v1[1]*v2[0],
	}
}

func norm(v vector) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// A payload owns its input and output buffers. apply writes only the output
// element at index i, so concurrent calls for distinct indices do not race.
type payload interface {
	apply(i int)
	checksum() float64
	reset()
}

type squarePayload struct {
	in, out []float64
}

func newSquarePayload(size int, rnd *rand.Rand) *squarePayload {
	p := &squarePayload{in: make([]float64, size), out: make([]float64, size)}
	for i := range p.in {
		p.in[i] = rnd.Float64()
	}
	return p
}

func (p *squarePayload) apply(i int) {
	p.out[i] = p.in[i] * p.in[i]
}

func (p *squarePayload) checksum() (sum float64) {
	for _, x := range p.out {
		sum += x
	}
	return
}

func (p *squarePayload) reset() {
	clear(p.out)
}

type crossPayload struct {
	a, b []vector
	out  []float64
}

func newCrossPayload(size int, rnd *rand.Rand) *crossPayload {
	p := &crossPayload{a: make([]vector, size), b: make([]vector, size), out: make([]float64, size)}
	for i := 0; i < size; i++ {
		p.a[i] = vector{rnd.Float64(), rnd.Float64(), rnd.Float64()}
		p.b[i] = vector{rnd.Float64(), rnd.Float64(), rnd.Float64()}
	}
	return p
}

func (p *crossPayload) apply(i int) {
	p.out[i] = norm(cross(p.a[i], p.b[i]))
}

func (p *crossPayload) checksum() (sum float64) {
	for _, x := range p.out {
		sum += x
	}
	return
}

func (p *crossPayload) reset() {
	clear(p.out)
}

func newPayload(name string, size int) payload {
	rnd := rand.New(rand.NewSource(int64(size)))
	if name == payloadSquare {
		return newSquarePayload(size, rnd)
	}
	return newCrossPayload(size, rnd)
}
