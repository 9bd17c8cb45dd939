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

	"github.com/ctessum/geom"
)

// buildShells constructs one lon/lat polygon ring per face plus the list
// of faces whose boundary crosses the antimeridian.
func (m *Mesh) buildShells() {
	nFaces := m.NFaces()
	m.shells = make([]geom.Polygon, nFaces)
	nodes := make([]int, 0, m.MaxNodesPerFace())
	for f := 0; f < nFaces; f++ {
		nodes = m.faceNodeIDs(nodes, f)
		ring := make([]geom.Point, len(nodes)+1)
		crosses := false
		for i, v := range nodes {
			ring[i] = geom.Point{
				X: m.NodeLon.Elements[v],
				Y: m.NodeLat.Elements[v],
			}
			// With longitudes wrapped to [-180,180), a jump of more
			// than 180° between consecutive boundary nodes means the
			// face straddles the antimeridian.
			next := nodes[(i+1)%len(nodes)]
			if math.Abs(m.NodeLon.Elements[v]-m.NodeLon.Elements[next]) > 180 {
				crosses = true
			}
		}
		ring[len(nodes)] = ring[0]
		m.shells[f] = geom.Polygon{ring}
		if crosses {
			m.antiFaces = append(m.antiFaces, f)
		}
	}
}

// PolygonShells returns one closed lon/lat polygon per face, in face
// order. Faces that cross the antimeridian are returned as stored, without
// splitting; AntimeridianFaces identifies them so a downstream geometry
// fixer can handle the wrap. The result is computed once and cached.
func (m *Mesh) PolygonShells() []geom.Polygon {
	m.shellOnce.Do(m.buildShells)
	return m.shells
}

// AntimeridianFaces returns the indices of the faces whose boundaries
// cross the antimeridian, in increasing order.
func (m *Mesh) AntimeridianFaces() []int {
	m.shellOnce.Do(m.buildShells)
	return m.antiFaces
}
