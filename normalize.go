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

	"github.com/ctessum/sparse"
)

// Normalize converts a raw 2-D connectivity array into a 0-indexed array
// marked with FillValue. Every entry equal to rawFill becomes FillValue and
// every other entry has indexBase subtracted from it; row order and row
// width are preserved. name identifies the array in error messages.
//
// mask reports which slots of the result (in row-major order) hold valid
// indices. A row with no valid entries signals a malformed face and returns
// a StructuralError.
//
// Normalize never mutates raw, and it is idempotent: applied to an
// already-normalized array with indexBase=0 and rawFill=FillValue it
// returns an identical copy.
func Normalize(name string, raw *sparse.DenseArrayInt, indexBase, rawFill int) (norm *sparse.DenseArrayInt, mask []bool, err error) {
	if len(raw.Shape) != 2 {
		return nil, nil, fmt.Errorf("mpasmesh: normalizing %s: want a 2-d array but have %d dimensions",
			name, len(raw.Shape))
	}
	return normalizeRows(name, raw, nil, indexBase, rawFill, false)
}

// normalizeRows is the shared implementation behind Normalize and the mesh
// builder. counts, when non-nil, gives the number of leading valid slots in
// each row; trailing slots are forced to FillValue regardless of their raw
// contents. (Some MPAS files pad verticesOnCell by repeating the last valid
// vertex rather than with zero, so the per-cell counts are authoritative.)
// allowEmpty permits rows with no valid entries, which is the correct
// behavior for edge arrays on mesh boundaries.
func normalizeRows(name string, raw *sparse.DenseArrayInt, counts []int, indexBase, rawFill int, allowEmpty bool) (*sparse.DenseArrayInt, []bool, error) {
	nrows, width := raw.Shape[0], raw.Shape[1]
	if counts != nil && len(counts) != nrows {
		return nil, nil, fmt.Errorf("mpasmesh: normalizing %s: have %d rows but %d row counts",
			name, nrows, len(counts))
	}
	norm := sparse.ZerosDenseInt(nrows, width)
	mask := make([]bool, nrows*width)
	for r := 0; r < nrows; r++ {
		valid := 0
		for j := 0; j < width; j++ {
			i := r*width + j
			v := raw.Elements[i]
			if v == rawFill || (counts != nil && j >= counts[r]) {
				norm.Elements[i] = FillValue
				continue
			}
			norm.Elements[i] = v - indexBase
			mask[i] = true
			valid++
		}
		if valid == 0 && !allowEmpty {
			return nil, nil, &StructuralError{
				Array:   name,
				Row:     r,
				Message: "all entries are padding; face has no valid nodes",
			}
		}
	}
	return norm, mask, nil
}

// checkIndexRange verifies that every non-fill entry of conn is a valid
// index in [0, n). It is run at construction time so that a Mesh never
// carries dangling references.
func checkIndexRange(name string, conn *sparse.DenseArrayInt, n int) error {
	width := conn.Shape[1]
	for i, v := range conn.Elements {
		if v == FillValue {
			continue
		}
		if v < 0 || v >= n {
			return &StructuralError{
				Array:   name,
				Row:     i / width,
				Message: fmt.Sprintf("index %d out of range [0,%d)", v, n),
			}
		}
	}
	return nil
}
