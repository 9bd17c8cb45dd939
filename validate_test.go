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
	"testing"
)

func TestCheckCleanMesh(t *testing.T) {
	for _, dual := range []bool{false, true} {
		m, err := New(icosaMesh().rawMesh(6, false), dual)
		if err != nil {
			t.Fatal(err)
		}
		if issues := m.Check(); len(issues) != 0 {
			t.Errorf("dual=%v: clean mesh reported issues %v", dual, issues)
		}
	}
}

// tamperedMesh builds a cube mesh and then corrupts its connectivity the
// way a buggy external assembler might, bypassing New's construction
// checks.
func tamperedMesh(t *testing.T) *Mesh {
	t.Helper()
	m, err := New(cubeMesh().rawMesh(6, false), false)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestCheckIndexRangeIssue(t *testing.T) {
	m := tamperedMesh(t)
	m.FaceNodes.Elements[1] = m.NNodes() + 5
	issues := m.Check()
	if !hasIssue(issues, IndexRange, 0) {
		t.Errorf("want an index-range issue for face 0 but have %v", issues)
	}
}

func TestCheckFaceDegreeIssue(t *testing.T) {
	m := tamperedMesh(t)
	width := m.MaxNodesPerFace()
	for j := 2; j < width; j++ {
		m.FaceNodes.Elements[3*width+j] = FillValue
	}
	issues := m.Check()
	if !hasIssue(issues, FaceDegree, 3) {
		t.Errorf("want a face-degree issue for face 3 but have %v", issues)
	}
}

func TestCheckEdgeSymmetryIssue(t *testing.T) {
	m := tamperedMesh(t)
	// Point edge 0 at two nodes on opposite cube corners, which share no
	// face.
	m.EdgeNodes.Elements[0] = 0 // (-1,-1,-1) corner
	m.EdgeNodes.Elements[1] = 7 // (1,1,1) corner
	issues := m.Check()
	if !hasIssue(issues, EdgeSymmetry, 0) {
		t.Errorf("want an edge-symmetry issue for edge 0 but have %v", issues)
	}
}

func TestCheckFillMarkedEdgeSkipped(t *testing.T) {
	m := tamperedMesh(t)
	m.EdgeNodes.Elements[0] = FillValue
	for _, issue := range m.Check() {
		if issue.Kind == EdgeSymmetry && issue.ID == 0 {
			t.Error("fill-marked edge should be skipped by the symmetry check")
		}
	}
}

func TestCheckSphereRadiusIssue(t *testing.T) {
	m := tamperedMesh(t)
	m.SphereRadius = -1
	issues := m.Check()
	if !hasIssue(issues, SphereRadius, -1) {
		t.Errorf("want a sphere-radius issue but have %v", issues)
	}
}

func TestCheckDoesNotMutate(t *testing.T) {
	m := tamperedMesh(t)
	before := append([]int(nil), m.FaceNodes.Elements...)
	m.FaceNodes.Elements[1] = m.NNodes() + 5
	before[1] = m.NNodes() + 5
	m.Check()
	for i, v := range m.FaceNodes.Elements {
		if v != before[i] {
			t.Fatalf("Check changed faceNodes[%d] from %d to %d", i, before[i], v)
		}
	}
}

func TestIssueString(t *testing.T) {
	issue := Issue{Kind: FaceDegree, ID: 4, Message: "face has 2 valid nodes; minimum is 3"}
	want := "face degree below minimum (id 4): face has 2 valid nodes; minimum is 3"
	if have := issue.String(); have != want {
		t.Errorf("want %q but have %q", want, have)
	}
}

func hasIssue(issues []Issue, kind IssueKind, id int) bool {
	for _, issue := range issues {
		if issue.Kind == kind && issue.ID == id {
			return true
		}
	}
	return false
}
