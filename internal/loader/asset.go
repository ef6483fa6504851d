package loader

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/philipparndt/gobuilding/pkg/geometry"
	"github.com/philipparndt/gobuilding/pkg/openscad"
	"github.com/philipparndt/gobuilding/pkg/stl"
)

var (
	// ErrUnsupportedAsset is returned for file types the viewer cannot show.
	ErrUnsupportedAsset = errors.New("unsupported asset type")
	// ErrInvalidTarget is returned for asset names outside the asset directory.
	ErrInvalidTarget = errors.New("invalid target")
)

// Format is the on-disk asset format.
type Format int

const (
	FormatSTL Format = iota
	FormatGLB
	FormatGLTF
	FormatSCAD
)

func (f Format) String() string {
	switch f {
	case FormatSTL:
		return "stl"
	case FormatGLB:
		return "glb"
	case FormatGLTF:
		return "gltf"
	case FormatSCAD:
		return "scad"
	default:
		return "unknown"
	}
}

// FormatOf maps a file name to its format.
func FormatOf(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".stl":
		return FormatSTL, nil
	case ".glb":
		return FormatGLB, nil
	case ".gltf":
		return FormatGLTF, nil
	case ".scad":
		return FormatSCAD, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedAsset, name)
	}
}

// Asset is a decoded asset ready for upload on the render thread.
// glTF content is only validated here; the renderer reads it from Path.
type Asset struct {
	Name   string
	Path   string
	Format Format
	Model  *stl.Model // STL and OpenSCAD
}

// Bounds returns the model bounds for triangle assets and an empty box otherwise.
func (a *Asset) Bounds() geometry.BoundingBox {
	if a.Model == nil {
		return geometry.NewBoundingBox()
	}
	return a.Model.BoundingBox()
}

const (
	glbMagic   = 0x46546C67 // "glTF"
	glbVersion = 2
)

type glbHeader struct {
	Magic   uint32
	Version uint32
	Length  uint32
}

// Decode reads the asset at path. OpenSCAD sources are rendered, which
// stops when ctx is cancelled.
func Decode(ctx context.Context, name, path string) (*Asset, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	asset := &Asset{Name: name, Path: path, Format: format}
	switch format {
	case FormatSTL:
		model, err := stl.Parse(path)
		if err != nil {
			return nil, fmt.Errorf("failed to parse STL %s: %w", name, err)
		}
		asset.Model = model
	case FormatSCAD:
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, err
		}
		model, err := openscad.NewRenderer(filepath.Dir(abs)).Render(ctx, abs)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", name, err)
		}
		asset.Model = model
	case FormatGLB:
		if err := checkGLB(path); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
	case FormatGLTF:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		if !json.Valid(data) {
			return nil, fmt.Errorf("failed to read %s: invalid glTF JSON", name)
		}
	}
	return asset, nil
}

func checkGLB(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var h glbHeader
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &h); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return errors.New("truncated GLB header")
		}
		return err
	}
	if h.Magic != glbMagic {
		return errors.New("not a GLB file")
	}
	if h.Version != glbVersion {
		return fmt.Errorf("unsupported glTF version %d", h.Version)
	}
	if int(h.Length) > len(data) {
		return fmt.Errorf("truncated GLB: header says %d bytes, got %d", h.Length, len(data))
	}
	return nil
}

// ScanTargets lists loadable assets in dir, sorted, leaving out exclude.
func ScanTargets(dir, exclude string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan assets: %w", err)
	}

	var targets []string
	for _, e := range entries {
		if e.IsDir() || e.Name() == exclude {
			continue
		}
		if _, err := FormatOf(e.Name()); err == nil {
			targets = append(targets, e.Name())
		}
	}
	slices.Sort(targets)
	return targets, nil
}
