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

// Command mpasmesh is a command-line interface for working with MPAS
// unstructured meshes.
package main

import (
	"fmt"
	"os"

	"github.com/spatialmodel/mpasmesh/mpasmeshutil"
)

func main() {
	if err := mpasmeshutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
