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

func TestSelectViewPrimal(t *testing.T) {
	raw := cubeMesh().rawMesh(6, false)
	v, err := selectView(raw, false)
	if err != nil {
		t.Fatal(err)
	}
	if v.nodeLon != raw.LonVertex || v.faceLon != raw.LonCell {
		t.Error("primal view does not alias vertex arrays as nodes and cell arrays as faces")
	}
	if v.faceNodes != raw.VerticesOnCell || v.faceNodesName != "verticesOnCell" {
		t.Error("primal view does not use verticesOnCell as face-node connectivity")
	}
	if v.edgeNodes != raw.VerticesOnEdge {
		t.Error("primal view does not use verticesOnEdge as edge-node connectivity")
	}
}

func TestSelectViewDual(t *testing.T) {
	raw := cubeMesh().rawMesh(6, false)
	v, err := selectView(raw, true)
	if err != nil {
		t.Fatal(err)
	}
	if v.nodeLon != raw.LonCell || v.faceLon != raw.LonVertex {
		t.Error("dual view does not swap the node and face coordinate sources")
	}
	if v.faceNodes != raw.CellsOnVertex || v.faceNodesName != "cellsOnVertex" {
		t.Error("dual view does not use cellsOnVertex as face-node connectivity")
	}
	if v.edgeNodes != raw.CellsOnEdge {
		t.Error("dual view does not use cellsOnEdge as edge-node connectivity")
	}
}

// A dataset without dual closure must be rejected for the dual view but
// still work for the primal view.
func TestSelectViewModeUnsupported(t *testing.T) {
	raw := cubeMesh().rawMesh(6, false)
	raw.CellsOnVertex = nil
	if _, err := New(raw, true); err == nil {
		t.Error("want an error selecting the dual view without cellsOnVertex")
	} else if _, ok := err.(ConfigError); !ok {
		t.Errorf("want a ConfigError but have %T: %v", err, err)
	}
	if _, err := New(raw, false); err != nil {
		t.Errorf("primal view should still work: %v", err)
	}

	raw = cubeMesh().rawMesh(6, false)
	raw.LonVertex = nil
	raw.LatVertex = nil
	if _, err := New(raw, false); err == nil {
		t.Error("want an error selecting the primal view without vertex coordinates")
	}
}

// Edge connectivity is optional: a dataset without it still builds, just
// without EdgeNodes.
func TestSelectViewNoEdges(t *testing.T) {
	raw := cubeMesh().rawMesh(6, false)
	raw.VerticesOnEdge = nil
	m, err := New(raw, false)
	if err != nil {
		t.Fatal(err)
	}
	if m.EdgeNodes != nil || m.NEdges() != 0 {
		t.Error("mesh built without edge data should have no edges")
	}
}
