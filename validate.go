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

import "fmt"

// IssueKind classifies a mesh consistency problem.
type IssueKind int

const (
	// IndexRange: a connectivity entry references a node outside
	// [0, nNodes).
	IndexRange IssueKind = iota
	// FaceDegree: a face has fewer than 3 valid nodes.
	FaceDegree
	// EdgeSymmetry: an edge's two nodes never appear together in any face.
	EdgeSymmetry
	// SphereRadius: the mesh claims to be on a sphere but carries a
	// non-positive radius.
	SphereRadius
	// DegenerateGeometry: a face produced degenerate triangles during
	// area computation.
	DegenerateGeometry
)

func (k IssueKind) String() string {
	switch k {
	case IndexRange:
		return "index out of range"
	case FaceDegree:
		return "face degree below minimum"
	case EdgeSymmetry:
		return "edge-face symmetry violation"
	case SphereRadius:
		return "invalid sphere radius"
	case DegenerateGeometry:
		return "degenerate geometry"
	default:
		return fmt.Sprintf("unknown issue kind %d", int(k))
	}
}

// An Issue is a single mesh consistency diagnostic. ID is the face, node,
// or edge the issue refers to, or -1 when the issue concerns the mesh as a
// whole. Issues are reports, never mutations; callers decide whether any
// of them is fatal.
type Issue struct {
	Kind    IssueKind
	ID      int
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%v (id %d): %s", i.Kind, i.ID, i.Message)
}

// Check verifies the mesh invariants and returns every violation found:
// connectivity index ranges, the minimum face degree, best-effort edge-face
// symmetry, and sphere-radius positivity. Check never mutates the mesh and
// never stops early; New enforces the fatal subset of these conditions at
// construction, so Check is primarily a defense against corrupted inputs
// assembled outside this package.
func (m *Mesh) Check() []Issue {
	var issues []Issue

	if m.OnSphere && !(m.SphereRadius > 0) {
		issues = append(issues, Issue{
			Kind:    SphereRadius,
			ID:      -1,
			Message: fmt.Sprintf("on-sphere mesh has sphere radius %g", m.SphereRadius),
		})
	}

	nNodes := m.NNodes()
	nFaces := m.NFaces()
	width := m.MaxNodesPerFace()

	// Per-node face membership, for the edge symmetry check below.
	nodeFaces := make([][]int, nNodes)

	for f := 0; f < nFaces; f++ {
		valid := 0
		for j := 0; j < width; j++ {
			v := m.FaceNodes.Elements[f*width+j]
			if v == FillValue {
				continue
			}
			if v < 0 || v >= nNodes {
				issues = append(issues, Issue{
					Kind:    IndexRange,
					ID:      f,
					Message: fmt.Sprintf("face references node %d, outside [0,%d)", v, nNodes),
				})
				continue
			}
			valid++
			nodeFaces[v] = append(nodeFaces[v], f)
		}
		if valid < 3 {
			issues = append(issues, Issue{
				Kind:    FaceDegree,
				ID:      f,
				Message: fmt.Sprintf("face has %d valid nodes; minimum is 3", valid),
			})
		}
	}

	if m.EdgeNodes != nil {
		for e := 0; e < m.NEdges(); e++ {
			a := m.EdgeNodes.Elements[e*2]
			b := m.EdgeNodes.Elements[e*2+1]
			if a == FillValue || b == FillValue {
				continue // boundary or missing edge
			}
			if a < 0 || a >= nNodes || b < 0 || b >= nNodes {
				issues = append(issues, Issue{
					Kind:    IndexRange,
					ID:      e,
					Message: fmt.Sprintf("edge references nodes (%d,%d), outside [0,%d)", a, b, nNodes),
				})
				continue
			}
			if !shareFace(nodeFaces[a], nodeFaces[b]) {
				issues = append(issues, Issue{
					Kind:    EdgeSymmetry,
					ID:      e,
					Message: fmt.Sprintf("nodes %d and %d of this edge never appear in a common face", a, b),
				})
			}
		}
	}
	return issues
}

// shareFace reports whether the sorted-by-construction face lists a and b
// have at least one face in common.
func shareFace(a, b []int) bool {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			return true
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return false
}
