/*
Copyright © 2023 the MPASMesh authors.
This file is part of MPASMesh.

MPASMesh is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

MPASMesh is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with MPASMesh.  If not, see <http://www.gnu.org/licenses/>.
*/

package mpasmesh

import (
	"math"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/floats"
)

// degenerateDot is the cosine threshold above which two unit vectors are
// treated as the same point.
const degenerateDot = 1 - 1e-14

// triangleExcess returns the signed spherical excess of the triangle with
// unit-vector corners a, b, c: positive when the corners wind
// counter-clockwise viewed from outside the sphere. The excess is computed
// with an atan2 half-angle form (Van Oosterom and Strackee) instead of
// summing arccos-derived interior angles, which loses precision for very
// small or near-antipodal triangles.
func triangleExcess(ax, ay, az, bx, by, bz, cx, cy, cz float64) float64 {
	// a · (b × c)
	det := ax*(by*cz-bz*cy) + ay*(bz*cx-bx*cz) + az*(bx*cy-by*cx)
	denom := 1 + (ax*bx + ay*by + az*bz) +
		(bx*cx + by*cy + bz*cz) +
		(ax*cx + ay*cy + az*cz)
	return 2 * math.Atan2(det, denom)
}

// faceArea computes the spherical surface area of one face by fanning
// spherical triangles from the face center to each consecutive pair of
// boundary nodes. nodes holds the valid (non-fill) node ids in boundary
// order; nx, ny, nz are unit-sphere node coordinates, and cx, cy, cz is
// the unit-sphere face center.
//
// The fan is summed signed under the counter-clockwise-positive winding
// convention and the magnitude taken, so a consistently wound face of
// either orientation yields its true area. Degenerate triangles (duplicate
// or collinear nodes) contribute zero; the second return reports whether
// any were encountered so the caller can record a diagnostic.
func faceArea(nodes []int, nx, ny, nz []float64, cx, cy, cz, radius float64) (float64, bool) {
	if len(nodes) < 3 {
		return 0, true
	}
	var sum float64
	degenerate := false
	for i := range nodes {
		v0 := nodes[i]
		v1 := nodes[(i+1)%len(nodes)]
		bx, by, bz := nx[v0], ny[v0], nz[v0]
		dx, dy, dz := nx[v1], ny[v1], nz[v1]
		if bx*dx+by*dy+bz*dz >= degenerateDot ||
			cx*bx+cy*by+cz*bz >= degenerateDot ||
			cx*dx+cy*dy+cz*dz >= degenerateDot {
			degenerate = true
			continue
		}
		e := triangleExcess(cx, cy, cz, bx, by, bz, dx, dy, dz)
		if math.IsNaN(e) || math.IsInf(e, 0) {
			degenerate = true
			continue
		}
		sum += e
	}
	return math.Abs(sum) * radius * radius, degenerate
}

// FaceAreas returns the spherical surface area of every face, in the same
// order as the FaceNodes rows, together with any geometry diagnostics
// accumulated along the way. Faces with degenerate geometry get a
// best-effort area from their non-degenerate sub-triangles and exactly one
// Issue of kind DegenerateGeometry; diagnostics never abort the
// computation.
//
// FaceAreas fails if the mesh is not on a sphere with a positive radius.
// The result is computed once, in parallel across faces, and cached.
func (m *Mesh) FaceAreas() ([]float64, []Issue, error) {
	m.areaOnce.Do(func() {
		if !m.OnSphere {
			m.areaErr = ConfigError("face areas are undefined for a mesh that is not on a sphere")
			return
		}
		if !(m.SphereRadius > 0) {
			m.areaErr = ConfigError("face areas are undefined for a non-positive sphere radius")
			return
		}

		nx, ny, nz := m.NodeCartesian()
		fx, fy, fz := m.FaceCartesian()
		nFaces := m.NFaces()
		areas := make([]float64, nFaces)
		degenerate := make([]bool, nFaces)

		// Each face's area depends only on its own node subset, so the
		// face loop is partitioned across processors with results written
		// to disjoint slots.
		nprocs := runtime.GOMAXPROCS(0)
		var wg sync.WaitGroup
		wg.Add(nprocs)
		for procNum := 0; procNum < nprocs; procNum++ {
			go func(procNum int) {
				defer wg.Done()
				nodes := make([]int, 0, m.MaxNodesPerFace())
				for f := procNum; f < nFaces; f += nprocs {
					nodes = m.faceNodeIDs(nodes, f)
					areas[f], degenerate[f] = faceArea(nodes,
						nx.Elements, ny.Elements, nz.Elements,
						fx.Elements[f], fy.Elements[f], fz.Elements[f],
						m.SphereRadius)
				}
			}(procNum)
		}
		wg.Wait()

		var issues []Issue
		for f, d := range degenerate {
			if d {
				issues = append(issues, Issue{
					Kind:    DegenerateGeometry,
					ID:      f,
					Message: "face triangulation produced one or more degenerate triangles; area is a best-effort value",
				})
			}
		}
		m.faceAreas = areas
		m.areaIssues = issues
	})
	return m.faceAreas, m.areaIssues, m.areaErr
}

// TotalFaceArea returns the sum of all face areas. For a closed mesh
// covering the full sphere the total reproduces 4πr² to near machine
// precision.
func (m *Mesh) TotalFaceArea() (float64, []Issue, error) {
	areas, issues, err := m.FaceAreas()
	if err != nil {
		return 0, nil, err
	}
	return floats.Sum(areas), issues, nil
}
