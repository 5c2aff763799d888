package grid_test

import (
	"fmt"

	"github.com/matzehuels/dashgrid/pkg/grid"
)

func ExampleCompact() {
	layout := grid.Layout{
		{ID: "header", X: 0, Y: 0, Width: 12, Height: 1, Fixed: true},
		{ID: "chart", X: 0, Y: 4, Width: 6, Height: 3},
		{ID: "table", X: 6, Y: 9, Width: 6, Height: 2},
	}

	compacted, err := grid.Compact(layout)
	if err != nil {
		panic(err)
	}
	for _, w := range compacted {
		fmt.Printf("%s at row %d\n", w.ID, w.Y)
	}
	// Output:
	// header at row 0
	// chart at row 1
	// table at row 1
}

func ExampleMoveElement() {
	layout := grid.Layout{
		{ID: "a", X: 0, Y: 0, Width: 4, Height: 2},
		{ID: "b", X: 5, Y: 0, Width: 4, Height: 2},
	}

	moved, err := grid.MoveElement(layout, "a", grid.Coord(4), nil, grid.MoveOptions{
		UserAction: true,
		Packing:    grid.PackingOn,
	})
	if err != nil {
		panic(err)
	}
	for _, w := range moved {
		fmt.Printf("%s (%d,%d)\n", w.ID, w.X, w.Y)
	}
	// Output:
	// a (4,0)
	// b (5,2)
}

func ExampleMetrics_GridToPixel() {
	m := grid.Metrics{
		ColumnWidth: grid.ColumnWidth(1168, 12, [2]float64{10, 10}),
		RowHeight:   100,
		Padding:     [2]float64{10, 10},
		Columns:     12,
	}
	fmt.Printf("%+v\n", m.GridToPixel(1, 1, 3, 2))
	// Output:
	// {X:107 Y:120 Width:280 Height:210 UnboundedHeight:false}
}
