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
	"sync"

	"github.com/ctessum/geom"
	"github.com/ctessum/sparse"
)

// A Mesh is the normalized, UGRID-style view of an MPAS mesh: 0-indexed,
// variable-degree connectivity marked with FillValue, coordinates in
// degrees. Identity is implicit in array position: node i is row i of the
// coordinate arrays, face f is row f of FaceNodes.
//
// A Mesh is built eagerly by New and is immutable afterward. Derived
// quantities (Cartesian coordinates, face areas, polygon shells) are
// computed lazily and cached; they never invalidate existing state.
type Mesh struct {
	// NodeLon and NodeLat hold one coordinate [degrees] per node, with
	// longitudes wrapped to [-180, 180).
	NodeLon, NodeLat *sparse.DenseArray

	// FaceLon and FaceLat hold the center coordinate [degrees] of each face.
	FaceLon, FaceLat *sparse.DenseArray

	// FaceNodes maps each face to its boundary nodes in counter-clockwise
	// order (nFaces × maxNodesPerFace); unused slots hold FillValue.
	FaceNodes *sparse.DenseArrayInt

	// EdgeNodes maps each edge to its two endpoint nodes (nEdges × 2),
	// FillValue-marked where an edge is degenerate or missing. It is nil
	// if the dataset provides no edge connectivity for the selected view.
	EdgeNodes *sparse.DenseArrayInt

	// NodesPerFace is the number of valid (non-fill) nodes of each face.
	NodesPerFace []int

	// OnSphere and SphereRadius are carried through from the raw mesh.
	OnSphere     bool
	SphereRadius float64

	dual bool // which view this mesh was built from

	nodeCartOnce        sync.Once
	nodeX, nodeY, nodeZ *sparse.DenseArray

	faceCartOnce        sync.Once
	faceX, faceY, faceZ *sparse.DenseArray

	areaOnce   sync.Once
	faceAreas  []float64
	areaIssues []Issue
	areaErr    error

	shellOnce sync.Once
	shells    []geom.Polygon
	antiFaces []int
}

// New builds the normalized mesh for the requested view of raw: the primal
// Voronoi mesh when useDual is false, or the Delaunay dual when useDual is
// true. The two views are mutually exclusive descriptions of the same raw
// arrays; building one never mutates raw, and both may be built from the
// same RawMesh.
//
// New returns a StructuralError if the raw connectivity is malformed
// (degree-0 face, out-of-range index) and a ConfigError if the requested
// view is unsupported or the sphere radius is invalid. A Mesh is never
// returned in a known-bad state.
func New(raw *RawMesh, useDual bool) (*Mesh, error) {
	if raw.OnSphere && !(raw.SphereRadius > 0) {
		return nil, ConfigError("mesh is on a sphere but sphere_radius is not positive")
	}
	v, err := selectView(raw, useDual)
	if err != nil {
		return nil, err
	}

	faceNodes, _, err := normalizeRows(v.faceNodesName, v.faceNodes,
		v.faceNodeCounts, 1, mpasFill, false)
	if err != nil {
		return nil, err
	}

	nNodes := v.nodeLon.Shape[0]
	if err := checkIndexRange(v.faceNodesName, faceNodes, nNodes); err != nil {
		return nil, err
	}

	nFaces, width := faceNodes.Shape[0], faceNodes.Shape[1]
	nodesPerFace := make([]int, nFaces)
	for f := 0; f < nFaces; f++ {
		n := 0
		for j := 0; j < width; j++ {
			if faceNodes.Elements[f*width+j] != FillValue {
				n++
			}
		}
		if n < 3 {
			return nil, &StructuralError{
				Array:   v.faceNodesName,
				Row:     f,
				Message: "face has fewer than 3 valid nodes",
			}
		}
		nodesPerFace[f] = n
	}

	m := &Mesh{
		NodeLon:      toDegreesLon(v.nodeLon),
		NodeLat:      toDegrees(v.nodeLat),
		FaceLon:      toDegreesLon(v.faceLon),
		FaceLat:      toDegrees(v.faceLat),
		FaceNodes:    faceNodes,
		NodesPerFace: nodesPerFace,
		OnSphere:     raw.OnSphere,
		SphereRadius: raw.SphereRadius,
		dual:         useDual,
	}

	if v.edgeNodes != nil {
		// Boundary edges may reference only one node in the dual view,
		// so empty and partial rows are fill-marked rather than fatal.
		edgeNodes, _, err := normalizeRows(v.edgeNodesName, v.edgeNodes,
			nil, 1, mpasFill, true)
		if err != nil {
			return nil, err
		}
		if err := checkIndexRange(v.edgeNodesName, edgeNodes, nNodes); err != nil {
			return nil, err
		}
		m.EdgeNodes = edgeNodes
	}
	return m, nil
}

// NNodes returns the number of nodes in the mesh.
func (m *Mesh) NNodes() int { return m.NodeLon.Shape[0] }

// NFaces returns the number of faces in the mesh.
func (m *Mesh) NFaces() int { return m.FaceNodes.Shape[0] }

// NEdges returns the number of edges in the mesh, or zero if the dataset
// provided no edge connectivity.
func (m *Mesh) NEdges() int {
	if m.EdgeNodes == nil {
		return 0
	}
	return m.EdgeNodes.Shape[0]
}

// MaxNodesPerFace returns the width of the face-node connectivity rows,
// which is the maximum node degree over all faces.
func (m *Mesh) MaxNodesPerFace() int { return m.FaceNodes.Shape[1] }

// IsDual reports whether this mesh is the dual (Delaunay) view of its
// source dataset.
func (m *Mesh) IsDual() bool { return m.dual }

// faceNodeIDs appends the valid node ids of face f to dst and returns it.
func (m *Mesh) faceNodeIDs(dst []int, f int) []int {
	width := m.FaceNodes.Shape[1]
	dst = dst[:0]
	for j := 0; j < width; j++ {
		if v := m.FaceNodes.Elements[f*width+j]; v != FillValue {
			dst = append(dst, v)
		}
	}
	return dst
}
