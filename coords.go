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

	"github.com/ctessum/sparse"
	"gonum.org/v1/gonum/floats"
)

// toDegrees returns a copy of rad scaled from radians to degrees.
// The input is not modified.
func toDegrees(rad *sparse.DenseArray) *sparse.DenseArray {
	deg := rad.Copy()
	floats.Scale(180/math.Pi, deg.Elements)
	return deg
}

// wrapLon canonicalizes a longitude in degrees to the range [-180, 180).
// All node and face-center longitudes share this convention so that faces
// crossing the antimeridian can be detected downstream; no geometry
// correction happens here.
func wrapLon(deg float64) float64 {
	deg = math.Mod(deg+180, 360)
	if deg < 0 {
		deg += 360
	}
	return deg - 180
}

// toDegreesLon converts a longitude array from radians to canonically
// wrapped degrees.
func toDegreesLon(rad *sparse.DenseArray) *sparse.DenseArray {
	deg := toDegrees(rad)
	for i, v := range deg.Elements {
		deg.Elements[i] = wrapLon(v)
	}
	return deg
}

// lonLatToCartesian converts a longitude and latitude in degrees to
// Cartesian coordinates on the unit sphere. The sphere radius is factored
// out; the area engine applies it separately.
func lonLatToCartesian(lonDeg, latDeg float64) (x, y, z float64) {
	lon := lonDeg * math.Pi / 180
	lat := latDeg * math.Pi / 180
	cosLat := math.Cos(lat)
	return cosLat * math.Cos(lon), cosLat * math.Sin(lon), math.Sin(lat)
}

// cartesianCoords converts parallel longitude and latitude arrays [degrees]
// to unit-sphere Cartesian coordinate arrays.
func cartesianCoords(lon, lat *sparse.DenseArray) (x, y, z *sparse.DenseArray) {
	n := lon.Shape[0]
	x = sparse.ZerosDense(n)
	y = sparse.ZerosDense(n)
	z = sparse.ZerosDense(n)
	for i := 0; i < n; i++ {
		x.Elements[i], y.Elements[i], z.Elements[i] =
			lonLatToCartesian(lon.Elements[i], lat.Elements[i])
	}
	return x, y, z
}

// NodeCartesian returns unit-sphere Cartesian coordinates for every node,
// derived from NodeLon and NodeLat. The result is computed once and cached.
func (m *Mesh) NodeCartesian() (x, y, z *sparse.DenseArray) {
	m.nodeCartOnce.Do(func() {
		m.nodeX, m.nodeY, m.nodeZ = cartesianCoords(m.NodeLon, m.NodeLat)
	})
	return m.nodeX, m.nodeY, m.nodeZ
}

// FaceCartesian returns unit-sphere Cartesian coordinates for every face
// center, derived from FaceLon and FaceLat. The result is computed once and
// cached.
func (m *Mesh) FaceCartesian() (x, y, z *sparse.DenseArray) {
	m.faceCartOnce.Do(func() {
		m.faceX, m.faceY, m.faceZ = cartesianCoords(m.FaceLon, m.FaceLat)
	})
	return m.faceX, m.faceY, m.faceZ
}
