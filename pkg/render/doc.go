// Package render converts rendered SVG diagrams to other formats.
//
// [ToPDF] and [ToPNG] shell out to rsvg-convert (from librsvg):
//
//	svg, err := dot.RenderSVG(ctx, src, dot.EngineDot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// The [dot] subpackage produces the SVG from graphs and search results.
//
// [dot]: github.com/matzehuels/waypoint/pkg/render/dot
package render
