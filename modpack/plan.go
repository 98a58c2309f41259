package modpack

import (
	"bytes"
	"io"

	"github.com/Strange-Account/go-modpack-loader/packagetypes"
)

// ContentBlob is an auxiliary file bundled with the modpack.
type ContentBlob struct {
	Name string
	Path string
	Data []byte
}

// Reader returns a fresh reader over the blob content.
func (b ContentBlob) Reader() io.Reader {
	return bytes.NewReader(b.Data)
}

// Plan is the installation plan built from a modpack.
type Plan struct {
	// Source is the path of the modpack the plan was loaded from.
	Source     string
	Definition *packagetypes.MasterDefinition
	Mods       []*packagetypes.Mod
	Content    []ContentBlob
	// Archives holds the base archive first, then every mod archive in
	// mod and install plan order.
	Archives []ExtendedArchive
}

// Empty reports whether the modpack had no manifest. An empty plan is a valid
// result with nothing to install.
func (p *Plan) Empty() bool {
	return p == nil || p.Definition == nil
}

// Sink receives every non-empty plan a Loader produces.
type Sink interface {
	Publish(p *Plan)
}
