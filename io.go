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
	"fmt"
	"os"
	"strings"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

// ugridFill is the fill marker used in written UGRID files. NetCDF classic
// integers are 32 bits, so FillValue itself cannot be stored; -1 is the
// conventional UGRID fill.
const ugridFill = -1

// ReadMPAS reads the mesh description arrays from an MPAS NetCDF dataset.
// Only the topology and coordinate variables are read; prognostic fields
// are ignored. Arrays the file does not provide are left nil, to be
// rejected later by New if the requested mesh view needs them.
func ReadMPAS(rw cdf.ReaderWriterAt) (*RawMesh, error) {
	f, err := cdf.Open(rw)
	if err != nil {
		return nil, fmt.Errorf("mpasmesh: opening MPAS file: %v", err)
	}
	raw := new(RawMesh)
	floatVars := []struct {
		name string
		dst  **sparse.DenseArray
	}{
		{"lonVertex", &raw.LonVertex},
		{"latVertex", &raw.LatVertex},
		{"lonCell", &raw.LonCell},
		{"latCell", &raw.LatCell},
	}
	for _, v := range floatVars {
		if *v.dst, err = readFloatVar(f, v.name); err != nil {
			return nil, err
		}
	}
	intVars := []struct {
		name string
		dst  **sparse.DenseArrayInt
	}{
		{"verticesOnCell", &raw.VerticesOnCell},
		{"verticesOnEdge", &raw.VerticesOnEdge},
		{"cellsOnVertex", &raw.CellsOnVertex},
		{"cellsOnEdge", &raw.CellsOnEdge},
		{"nEdgesOnCell", &raw.NEdgesOnCell},
	}
	for _, v := range intVars {
		if *v.dst, err = readIntVar(f, v.name); err != nil {
			return nil, err
		}
	}

	if a, ok := f.Header.GetAttribute("", "on_a_sphere").(string); ok {
		raw.OnSphere = strings.EqualFold(strings.TrimSpace(a), "YES")
	}
	if a, ok := f.Header.GetAttribute("", "sphere_radius").([]float64); ok && len(a) > 0 {
		raw.SphereRadius = a[0]
	}
	if raw.OnSphere && raw.SphereRadius == 0 {
		// MPAS unit-sphere meshes sometimes omit the radius attribute.
		raw.SphereRadius = 1
	}
	return raw, nil
}

// hasVar reports whether the file defines a variable named v.
func hasVar(f *cdf.File, v string) bool {
	for _, name := range f.Header.Variables() {
		if name == v {
			return true
		}
	}
	return false
}

// readFloatVar reads a float variable of either NetCDF float width into a
// DenseArray, or returns nil if the file does not define it.
func readFloatVar(f *cdf.File, name string) (*sparse.DenseArray, error) {
	if !hasVar(f, name) {
		return nil, nil
	}
	dims := f.Header.Lengths(name)
	data := sparse.ZerosDense(dims...)
	buf := f.Header.ZeroValue(name, len(data.Elements))
	if _, err := f.Reader(name, nil, nil).Read(buf); err != nil {
		return nil, fmt.Errorf("mpasmesh: reading variable %s: %v", name, err)
	}
	switch b := buf.(type) {
	case []float64:
		copy(data.Elements, b)
	case []float32:
		for i, v := range b {
			data.Elements[i] = float64(v)
		}
	default:
		return nil, fmt.Errorf("mpasmesh: variable %s has type %T; want a float type", name, buf)
	}
	return data, nil
}

// readIntVar reads an integer variable into a DenseArrayInt, or returns
// nil if the file does not define it.
func readIntVar(f *cdf.File, name string) (*sparse.DenseArrayInt, error) {
	if !hasVar(f, name) {
		return nil, nil
	}
	dims := f.Header.Lengths(name)
	data := sparse.ZerosDenseInt(dims...)
	buf := f.Header.ZeroValue(name, len(data.Elements))
	if _, err := f.Reader(name, nil, nil).Read(buf); err != nil {
		return nil, fmt.Errorf("mpasmesh: reading variable %s: %v", name, err)
	}
	switch b := buf.(type) {
	case []int32:
		for i, v := range b {
			data.Elements[i] = int(v)
		}
	case []int16:
		for i, v := range b {
			data.Elements[i] = int(v)
		}
	default:
		return nil, fmt.Errorf("mpasmesh: variable %s has type %T; want an integer type", name, buf)
	}
	return data, nil
}

// WriteUGRID writes the normalized mesh to w as a UGRID-convention NetCDF
// file with the standard Mesh2 variable names. Connectivity fill slots are
// written as the UGRID fill value -1.
func (m *Mesh) WriteUGRID(w *os.File) error {
	dims := []string{"nMesh2_node", "nMesh2_face", "nMaxMesh2_face_nodes"}
	lengths := []int{m.NNodes(), m.NFaces(), m.MaxNodesPerFace()}
	if m.EdgeNodes != nil {
		dims = append(dims, "nMesh2_edge", "Two")
		lengths = append(lengths, m.NEdges(), 2)
	}

	h := cdf.NewHeader(dims, lengths)
	h.AddAttribute("", "Conventions", "UGRID-1.0")
	if m.OnSphere {
		h.AddAttribute("", "on_a_sphere", "YES")
	} else {
		h.AddAttribute("", "on_a_sphere", "NO")
	}
	h.AddAttribute("", "sphere_radius", []float64{m.SphereRadius})

	h.AddVariable("Mesh2_node_x", []string{"nMesh2_node"}, []float64{0})
	h.AddAttribute("Mesh2_node_x", "units", "degrees_east")
	h.AddVariable("Mesh2_node_y", []string{"nMesh2_node"}, []float64{0})
	h.AddAttribute("Mesh2_node_y", "units", "degrees_north")
	h.AddVariable("Mesh2_face_x", []string{"nMesh2_face"}, []float64{0})
	h.AddAttribute("Mesh2_face_x", "units", "degrees_east")
	h.AddVariable("Mesh2_face_y", []string{"nMesh2_face"}, []float64{0})
	h.AddAttribute("Mesh2_face_y", "units", "degrees_north")
	h.AddVariable("Mesh2_face_nodes", []string{"nMesh2_face", "nMaxMesh2_face_nodes"}, []int32{0})
	h.AddAttribute("Mesh2_face_nodes", "_FillValue", []int32{ugridFill})
	h.AddAttribute("Mesh2_face_nodes", "start_index", []int32{0})
	h.AddVariable("nNodes_per_face", []string{"nMesh2_face"}, []int32{0})
	if m.EdgeNodes != nil {
		h.AddVariable("Mesh2_edge_nodes", []string{"nMesh2_edge", "Two"}, []int32{0})
		h.AddAttribute("Mesh2_edge_nodes", "_FillValue", []int32{ugridFill})
		h.AddAttribute("Mesh2_edge_nodes", "start_index", []int32{0})
	}
	h.Define()

	f, err := cdf.Create(w, h)
	if err != nil {
		return fmt.Errorf("mpasmesh: creating UGRID file: %v", err)
	}

	if err := writeFloatVar(f, "Mesh2_node_x", m.NodeLon.Elements); err != nil {
		return err
	}
	if err := writeFloatVar(f, "Mesh2_node_y", m.NodeLat.Elements); err != nil {
		return err
	}
	if err := writeFloatVar(f, "Mesh2_face_x", m.FaceLon.Elements); err != nil {
		return err
	}
	if err := writeFloatVar(f, "Mesh2_face_y", m.FaceLat.Elements); err != nil {
		return err
	}
	if err := writeIntVar(f, "Mesh2_face_nodes", m.FaceNodes.Elements); err != nil {
		return err
	}
	if err := writeIntVar(f, "nNodes_per_face", m.NodesPerFace); err != nil {
		return err
	}
	if m.EdgeNodes != nil {
		if err := writeIntVar(f, "Mesh2_edge_nodes", m.EdgeNodes.Elements); err != nil {
			return err
		}
	}
	if err := cdf.UpdateNumRecs(w); err != nil {
		return fmt.Errorf("mpasmesh: finalizing UGRID file: %v", err)
	}
	return nil
}

func writeFloatVar(f *cdf.File, name string, data []float64) error {
	end := f.Header.Lengths(name)
	start := make([]int, len(end))
	if _, err := f.Writer(name, start, end).Write(data); err != nil {
		return fmt.Errorf("mpasmesh: writing variable %s: %v", name, err)
	}
	return nil
}

func writeIntVar(f *cdf.File, name string, data []int) error {
	data32 := make([]int32, len(data))
	for i, v := range data {
		if v == FillValue {
			data32[i] = ugridFill
		} else {
			data32[i] = int32(v)
		}
	}
	end := f.Header.Lengths(name)
	start := make([]int, len(end))
	if _, err := f.Writer(name, start, end).Write(data32); err != nil {
		return fmt.Errorf("mpasmesh: writing variable %s: %v", name, err)
	}
	return nil
}
