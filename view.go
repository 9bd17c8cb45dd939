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
	"github.com/ctessum/sparse"
)

// A viewDescriptor names which raw arrays supply node coordinates, face
// coordinates, and connectivity for the primal or dual view of an MPAS
// mesh. It is resolved once at construction so that no downstream code
// re-branches on the dual flag, and it only aliases the raw buffers; it
// never copies or mutates them.
type viewDescriptor struct {
	nodeLon, nodeLat *sparse.DenseArray
	faceLon, faceLat *sparse.DenseArray

	// faceNodes is the face-node connectivity for this view:
	// verticesOnCell (primal) or cellsOnVertex (dual).
	faceNodes     *sparse.DenseArrayInt
	faceNodesName string

	// faceNodeCounts, when non-nil, gives the valid node count of each
	// face row (nEdgesOnCell in the primal view; the dual view relies on
	// zero padding alone).
	faceNodeCounts []int

	// edgeNodes is the edge-node connectivity for this view, nil if the
	// dataset does not provide it.
	edgeNodes     *sparse.DenseArrayInt
	edgeNodesName string
}

// selectView maps the raw MPAS arrays onto a single coherent mesh view.
// In the primal view, mesh vertices become nodes and cell centers become
// face centers; the dual view swaps the two roles. If the dataset lacks an
// array required for the requested view (for example an ocean-only mesh
// without full dual closure), selectView reports a ConfigError rather than
// describing a partially-built mesh.
func selectView(raw *RawMesh, useDual bool) (viewDescriptor, error) {
	if useDual {
		if raw.LonCell == nil || raw.LatCell == nil || raw.CellsOnVertex == nil {
			return viewDescriptor{}, ConfigError(
				"dual mesh view is unsupported for this mesh: cellsOnVertex or cell coordinates are missing")
		}
		if raw.LonVertex == nil || raw.LatVertex == nil {
			return viewDescriptor{}, ConfigError(
				"dual mesh view is unsupported for this mesh: vertex coordinates are missing")
		}
		v := viewDescriptor{
			nodeLon:       raw.LonCell,
			nodeLat:       raw.LatCell,
			faceLon:       raw.LonVertex,
			faceLat:       raw.LatVertex,
			faceNodes:     raw.CellsOnVertex,
			faceNodesName: "cellsOnVertex",
		}
		if raw.CellsOnEdge != nil {
			v.edgeNodes = raw.CellsOnEdge
			v.edgeNodesName = "cellsOnEdge"
		}
		return v, nil
	}

	if raw.LonVertex == nil || raw.LatVertex == nil || raw.VerticesOnCell == nil {
		return viewDescriptor{}, ConfigError(
			"primal mesh view is unsupported for this mesh: verticesOnCell or vertex coordinates are missing")
	}
	if raw.LonCell == nil || raw.LatCell == nil {
		return viewDescriptor{}, ConfigError(
			"primal mesh view is unsupported for this mesh: cell coordinates are missing")
	}
	v := viewDescriptor{
		nodeLon:       raw.LonVertex,
		nodeLat:       raw.LatVertex,
		faceLon:       raw.LonCell,
		faceLat:       raw.LatCell,
		faceNodes:     raw.VerticesOnCell,
		faceNodesName: "verticesOnCell",
	}
	if raw.NEdgesOnCell != nil {
		v.faceNodeCounts = raw.NEdgesOnCell.Elements
	}
	if raw.VerticesOnEdge != nil {
		v.edgeNodes = raw.VerticesOnEdge
		v.edgeNodesName = "verticesOnEdge"
	}
	return v, nil
}
