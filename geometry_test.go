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
	"reflect"
	"testing"

	"github.com/ctessum/sparse"
)

func TestPolygonShells(t *testing.T) {
	m, err := New(cubeMesh().rawMesh(6, false), false)
	if err != nil {
		t.Fatal(err)
	}
	shells := m.PolygonShells()
	if len(shells) != m.NFaces() {
		t.Fatalf("want %d shells but have %d", m.NFaces(), len(shells))
	}
	for f, poly := range shells {
		ring := poly[0]
		if len(ring) != m.NodesPerFace[f]+1 {
			t.Errorf("face %d: want ring length %d but have %d",
				f, m.NodesPerFace[f]+1, len(ring))
		}
		if ring[0] != ring[len(ring)-1] {
			t.Errorf("face %d: ring is not closed", f)
		}
	}
	if &shells[0] != &m.PolygonShells()[0] {
		t.Error("PolygonShells did not cache its result")
	}
}

// antimeridianTestMesh has two triangular faces: face 0 straddles the
// 180° meridian, face 1 does not.
func antimeridianTestMesh() *Mesh {
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }
	lonVert := sparse.ZerosDense(4)
	latVert := sparse.ZerosDense(4)
	lons := []float64{rad(175), rad(185), rad(10), rad(20)}
	lats := []float64{rad(5), rad(5), rad(5), rad(15)}
	copy(lonVert.Elements, lons)
	copy(latVert.Elements, lats)

	lonCell := sparse.ZerosDense(2)
	latCell := sparse.ZerosDense(2)
	lonCell.Elements = []float64{rad(180), rad(15)}
	latCell.Elements = []float64{rad(5), rad(10)}

	voc := sparse.ZerosDenseInt(2, 3)
	copy(voc.Elements, []int{1, 2, 4, 3, 4, 1})

	m, err := New(&RawMesh{
		LonVertex:      lonVert,
		LatVertex:      latVert,
		LonCell:        lonCell,
		LatCell:        latCell,
		VerticesOnCell: voc,
		OnSphere:       true,
		SphereRadius:   1,
	}, false)
	if err != nil {
		panic(err)
	}
	return m
}

func TestAntimeridianFaces(t *testing.T) {
	m := antimeridianTestMesh()
	want := []int{0}
	if have := m.AntimeridianFaces(); !reflect.DeepEqual(have, want) {
		t.Errorf("want %v but have %v", want, have)
	}
}

func TestCubeAntimeridianFaces(t *testing.T) {
	m, err := New(cubeMesh().rawMesh(6, false), false)
	if err != nil {
		t.Fatal(err)
	}
	// The cube's vertices sit at lon ±45° and ±135°. The -x face (1)
	// straddles 180°, and the two polar faces (4, 5) wrap all the way
	// around, so their rings also jump across it.
	want := []int{1, 4, 5}
	if have := m.AntimeridianFaces(); !reflect.DeepEqual(have, want) {
		t.Errorf("want %v but have %v", want, have)
	}
}
