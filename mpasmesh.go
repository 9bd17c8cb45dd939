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

// Package mpasmesh converts unstructured climate and ocean model meshes
// produced by the MPAS (Model for Prediction Across Scales) framework into a
// canonical, 0-indexed, UGRID-style topological representation, and computes
// exact spherical surface areas for the mesh faces.
//
// MPAS stores connectivity as flat, 1-indexed, fixed-width integer arrays
// padded with zeros. This package re-bases those arrays to 0-indexed
// arrays marked with a single reserved fill sentinel, selects either the
// primal (Voronoi) or dual (Delaunay) view of the mesh, converts angular
// coordinates to degrees, and derives per-face spherical areas that sum to
// 4πr² over a closed mesh.
package mpasmesh

import (
	"fmt"
	"math"

	"github.com/ctessum/sparse"
)

// Version gives the version of this library.
const Version = "1.0.0"

// FillValue marks unused slots in normalized connectivity arrays. It is the
// most negative representable int so that it can never collide with a valid
// non-negative node or face index.
const FillValue = math.MinInt

// mpasFill is the raw MPAS convention for both "missing" and "padding"
// entries in 1-indexed connectivity arrays.
const mpasFill = 0

// RawMesh holds the numeric arrays of an MPAS mesh exactly as stored:
// angular coordinates in radians and flat, 1-indexed, zero-padded
// connectivity. A RawMesh is read once at construction of a Mesh and is
// never mutated by this package.
//
// Arrays that a given file does not provide may be nil; New reports a
// configuration error if an array required for the requested primal or dual
// view is missing.
type RawMesh struct {
	// Vertex and cell-center coordinates [radians].
	LonVertex, LatVertex *sparse.DenseArray
	LonCell, LatCell     *sparse.DenseArray

	// VerticesOnCell maps each cell to its corner vertices
	// (nCells × maxEdges, 1-indexed, zero-padded).
	VerticesOnCell *sparse.DenseArrayInt

	// VerticesOnEdge maps each edge to its two endpoint vertices
	// (nEdges × 2, 1-indexed).
	VerticesOnEdge *sparse.DenseArrayInt

	// CellsOnVertex maps each vertex to the cells surrounding it
	// (nVertices × vertexDegree, 1-indexed, zero where a cell is missing).
	CellsOnVertex *sparse.DenseArrayInt

	// CellsOnEdge maps each edge to the two cells it separates
	// (nEdges × 2, 1-indexed, zero on mesh boundaries).
	CellsOnEdge *sparse.DenseArrayInt

	// NEdgesOnCell is the actual number of edges (and vertices) of each
	// cell (nCells).
	NEdgesOnCell *sparse.DenseArrayInt

	// OnSphere reports whether the mesh lies on a sphere, and SphereRadius
	// is the sphere radius in the units of the coordinate scale.
	OnSphere     bool
	SphereRadius float64
}

// NCells returns the number of cells in the raw mesh.
func (r *RawMesh) NCells() int {
	if r.LonCell == nil {
		return 0
	}
	return r.LonCell.Shape[0]
}

// NVertices returns the number of vertices in the raw mesh.
func (r *RawMesh) NVertices() int {
	if r.LonVertex == nil {
		return 0
	}
	return r.LonVertex.Shape[0]
}

// A StructuralError indicates malformed raw connectivity: a face without
// any valid nodes, or an index outside the declared bounds. Mesh
// construction aborts on structural errors so a Mesh is never returned in a
// known-bad state.
type StructuralError struct {
	Array   string // name of the offending connectivity array
	Row     int    // row (face, edge, or node id) within the array
	Message string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("mpasmesh: structural error in %s, row %d: %s",
		e.Array, e.Row, e.Message)
}

// A ConfigError indicates an invalid construction request, such as a
// non-positive sphere radius on a spherical mesh or a dual-mesh view of a
// dataset lacking dual closure.
type ConfigError string

func (e ConfigError) Error() string { return "mpasmesh: " + string(e) }
