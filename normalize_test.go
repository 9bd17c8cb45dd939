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
	"reflect"
	"testing"

	"github.com/ctessum/sparse"
)

func intArray(rows, cols int, elements ...int) *sparse.DenseArrayInt {
	a := sparse.ZerosDenseInt(rows, cols)
	copy(a.Elements, elements)
	return a
}

func TestNormalize(t *testing.T) {
	raw := intArray(3, 4,
		1, 2, 3, 0,
		4, 3, 0, 0,
		2, 5, 6, 1,
	)
	before := append([]int(nil), raw.Elements...)

	norm, mask, err := Normalize("verticesOnCell", raw, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	F := FillValue
	want := []int{
		0, 1, 2, F,
		3, 2, F, F,
		1, 4, 5, 0,
	}
	if !reflect.DeepEqual(norm.Elements, want) {
		t.Errorf("want %v but have %v", want, norm.Elements)
	}
	wantMask := []bool{
		true, true, true, false,
		true, true, false, false,
		true, true, true, true,
	}
	if !reflect.DeepEqual(mask, wantMask) {
		t.Errorf("mask: want %v but have %v", wantMask, mask)
	}
	if !reflect.DeepEqual(raw.Elements, before) {
		t.Error("Normalize mutated its input")
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	norm, _, err := Normalize("conn", intArray(2, 3,
		1, 2, 0,
		3, 1, 2,
	), 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	again, _, err := Normalize("conn", norm, 0, FillValue)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(norm.Elements, again.Elements) {
		t.Errorf("re-normalizing changed %v to %v", norm.Elements, again.Elements)
	}
}

func TestNormalizeEmptyRow(t *testing.T) {
	raw := intArray(2, 3,
		1, 2, 3,
		0, 0, 0,
	)
	_, _, err := Normalize("verticesOnCell", raw, 1, 0)
	serr, ok := err.(*StructuralError)
	if !ok {
		t.Fatalf("want a StructuralError but have %v", err)
	}
	if serr.Array != "verticesOnCell" || serr.Row != 1 {
		t.Errorf("want error in verticesOnCell row 1 but have %v", serr)
	}
}

func TestNormalizeNot2D(t *testing.T) {
	raw := sparse.ZerosDenseInt(4)
	if _, _, err := Normalize("conn", raw, 1, 0); err == nil {
		t.Error("want an error for a 1-d connectivity array")
	}
}

func TestCheckIndexRange(t *testing.T) {
	conn := intArray(2, 2,
		0, 3,
		FillValue, 1,
	)
	if err := checkIndexRange("conn", conn, 4); err != nil {
		t.Errorf("indices in range, but have error %v", err)
	}
	err := checkIndexRange("conn", conn, 3)
	serr, ok := err.(*StructuralError)
	if !ok {
		t.Fatalf("want a StructuralError but have %v", err)
	}
	if serr.Row != 0 {
		t.Errorf("want error on row 0 but have row %d", serr.Row)
	}
}
