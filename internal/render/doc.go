// Package render draws the chart artifacts of each analysis section.
//
// Bar and category scatter charts go through the go-chart high level types.
// The heatmap, 3D projection, day bars, network and chord diagrams are drawn
// directly on a go-chart Renderer, which gives PNG and SVG output from the
// same drawing code. PNG artifacts can carry a caption band stamped with a
// bitmap font after rendering.
package render
