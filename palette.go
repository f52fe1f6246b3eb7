package paint

import "github.com/gogpu/gputypes"

// threadTintColors is the palette used to visualize which worker
// painted a tile. Semi-transparent so the content stays readable
// underneath; worker t uses entry t mod 8.
var threadTintColors = [8]gputypes.Color{
	{R: 6.0 / 255.0, G: 153.0 / 255.0, B: 198.0 / 255.0, A: 0.7},
	{R: 255.0 / 255.0, G: 212.0 / 255.0, B: 83.0 / 255.0, A: 0.7},
	{R: 116.0 / 255.0, G: 29.0 / 255.0, B: 109.0 / 255.0, A: 0.7},
	{R: 204.0 / 255.0, G: 158.0 / 255.0, B: 199.0 / 255.0, A: 0.7},
	{R: 242.0 / 255.0, G: 46.0 / 255.0, B: 121.0 / 255.0, A: 0.7},
	{R: 116.0 / 255.0, G: 203.0 / 255.0, B: 196.0 / 255.0, A: 0.7},
	{R: 255.0 / 255.0, G: 249.0 / 255.0, B: 201.0 / 255.0, A: 0.7},
	{R: 137.0 / 255.0, G: 196.0 / 255.0, B: 78.0 / 255.0, A: 0.7},
}
