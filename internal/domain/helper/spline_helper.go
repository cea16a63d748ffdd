package helper

import (
	"fmt"

	"github.com/paulmach/orb"
	"honnef.co/go/curve"

	"AreaHelper-App/internal/domain/model"
)

// BezierSpline rounds a closed drawn path into a smooth curve. Knots
// become cardinal-spline tangents, each segment is evaluated as a cubic
// bezier, and the whole path is resampled at a density set by
// resolution (samples ~ resolution/10 across the path). This is what
// makes a quick freehand circle look circular rather than polygonal.
func BezierSpline(points []orb.Point, resolution, sharpness float64) ([]orb.Point, error) {
	// Work on the open form; the caller closes the ring afterwards.
	if len(points) > 1 && points[0] == points[len(points)-1] {
		points = points[:len(points)-1]
	}
	n := len(points)
	if n < 3 {
		return nil, fmt.Errorf("spline needs at least 3 distinct points, got %d", n)
	}
	if sharpness <= 0 || sharpness >= 1 {
		sharpness = model.DefaultDrawingTuning().SplineSharpness
	}
	if resolution <= 0 {
		resolution = model.DefaultDrawingTuning().SplineResolution
	}

	samplesPerSegment := int(resolution/10) / n
	if samplesPerSegment < 2 {
		samplesPerSegment = 2
	}

	// Cardinal tangent scale; higher sharpness pulls the curve tighter
	// to the knots.
	tension := (1 - sharpness) / 2

	out := make([]orb.Point, 0, n*samplesPerSegment)
	for i := 0; i < n; i++ {
		p0 := points[(i-1+n)%n]
		p1 := points[i]
		p2 := points[(i+1)%n]
		p3 := points[(i+2)%n]

		// Tangents at the segment endpoints.
		t1x := (p2[0] - p0[0]) * tension
		t1y := (p2[1] - p0[1]) * tension
		t2x := (p3[0] - p1[0]) * tension
		t2y := (p3[1] - p1[1]) * tension

		bez := curve.CubicBez{
			P0: curve.Pt(p1[0], p1[1]),
			P1: curve.Pt(p1[0]+t1x/3, p1[1]+t1y/3),
			P2: curve.Pt(p2[0]-t2x/3, p2[1]-t2y/3),
			P3: curve.Pt(p2[0], p2[1]),
		}

		for s := 0; s < samplesPerSegment; s++ {
			t := float64(s) / float64(samplesPerSegment)
			pt := bez.Eval(t)
			out = append(out, orb.Point{pt.X, pt.Y})
		}
	}

	return out, nil
}
