package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	gerr "github.com/matzehuels/gamesolver/pkg/errors"
)

// rsvgBinary converts SVG to raster and print formats. It ships with librsvg
// (brew install librsvg, apt install librsvg2-bin).
const rsvgBinary = "rsvg-convert"

// ToPDF converts an SVG document to PDF.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return rsvgConvert(ctx, svg, "pdf")
}

// ToPNG converts an SVG document to PNG. A scale of 2 doubles the
// resolution; values of zero or below mean 1.
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	return rsvgConvert(ctx, svg, "png", "--zoom", strconv.FormatFloat(scale, 'f', 2, 64))
}

// rsvgConvert pipes svg through rsvg-convert. A missing binary is reported as
// UNSUPPORTED, so callers can tell it apart from a failed conversion.
func rsvgConvert(ctx context.Context, svg []byte, format string, args ...string) ([]byte, error) {
	bin, err := exec.LookPath(rsvgBinary)
	if err != nil {
		return nil, gerr.Wrap(gerr.ErrCodeUnsupported, err, "%s output needs %s from librsvg", format, rsvgBinary)
	}

	cmd := exec.CommandContext(ctx, bin, append([]string{"--format", format}, args...)...)
	cmd.Stdin = bytes.NewReader(svg)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %w: %s", rsvgBinary, err, strings.TrimSpace(stderr.String()))
	}
	return out.Bytes(), nil
}
