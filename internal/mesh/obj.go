package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Faultbox/facadegen/internal/material"
)

// DefaultMaterialName is used for faces without a material.
const DefaultMaterialName = "facade_default"

// WriteOBJ writes the mesh as Wavefront OBJ. Each face gets its own four
// texture coordinates; faces are grouped by material.
func WriteOBJ(w io.Writer, m *Mesh, mtlFile string) error {
	out := bufio.NewWriterSize(w, 64*1024)

	if mtlFile != "" {
		fmt.Fprintln(out, "mtllib", mtlFile)
	}
	for _, v := range m.Vertices {
		fmt.Fprintf(out, "v %.6f %.6f %.6f\n", v.X, v.Y, v.Z)
	}
	for _, f := range m.Faces {
		for _, uv := range f.UVs {
			fmt.Fprintf(out, "vt %.6f %.6f\n", uv.U, uv.V)
		}
	}

	current := "\x00"
	for i, f := range m.Faces {
		name := f.Material
		if name == "" {
			name = DefaultMaterialName
		}
		if name != current {
			fmt.Fprintln(out, "usemtl", name)
			current = name
		}
		// OBJ indices are 1-based.
		vt := i*4 + 1
		fmt.Fprintf(out, "f %d/%d %d/%d %d/%d %d/%d\n",
			f.Indices[0]+1, vt,
			f.Indices[1]+1, vt+1,
			f.Indices[2]+1, vt+2,
			f.Indices[3]+1, vt+3)
	}
	return out.Flush()
}

// WriteMTL writes a Wavefront material library for the created materials
// plus the default material.
func WriteMTL(w io.Writer, materials []*material.Material) error {
	out := bufio.NewWriter(w)

	fmt.Fprintf(out, "newmtl %s\nKd %.4f %.4f %.4f\nd 1.0000\nillum 1\n\n", DefaultMaterialName, 0.7, 0.3, 0.3)
	for _, m := range materials {
		fmt.Fprintf(out, "# %s\nnewmtl %s\nKd 1.0000 1.0000 1.0000\nd 1.0000\nillum 1\n", m.Part, m.ID)
		fmt.Fprintf(out, "map_Kd %s\n\n", filepath.ToSlash(filepath.Join(m.Texture.Path, m.Texture.Name)))
	}
	return out.Flush()
}

// WriteFiles writes <base>.obj and <base>.mtl into dir.
func WriteFiles(dir, base string, m *Mesh, materials []*material.Material) (string, error) {
	base = strings.TrimSuffix(base, filepath.Ext(base))
	objPath := filepath.Join(dir, base+".obj")
	mtlName := base + ".mtl"

	mtlFile, err := os.Create(filepath.Join(dir, mtlName))
	if err != nil {
		return "", err
	}
	defer mtlFile.Close()
	if err := WriteMTL(mtlFile, materials); err != nil {
		return "", fmt.Errorf("writing %s: %w", mtlName, err)
	}

	objFile, err := os.Create(objPath)
	if err != nil {
		return "", err
	}
	defer objFile.Close()
	if err := WriteOBJ(objFile, m, mtlName); err != nil {
		return "", fmt.Errorf("writing %s: %w", objPath, err)
	}
	return objPath, nil
}
