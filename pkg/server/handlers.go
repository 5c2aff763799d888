package server

import (
	"net/http"

	"github.com/matzehuels/dashgrid/pkg/buildinfo"
	"github.com/matzehuels/dashgrid/pkg/config"
	"github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/grid"
	"github.com/matzehuels/dashgrid/pkg/httputil"
	"github.com/matzehuels/dashgrid/pkg/pipeline"
)

// OperationRequest is the body of the compact, move, resize and remove
// endpoints. The operation itself comes from the path.
type OperationRequest struct {
	Layout grid.Layout `json:"layout"`
	pipeline.Options
}

// OperationResponse is the result of an operation.
type OperationResponse struct {
	Layout    grid.Layout       `json:"layout"`
	Changed   []string          `json:"changed"`
	Rects     []WidgetRect      `json:"rects"`
	Height    float64           `json:"height"`
	Artifacts map[string]string `json:"artifacts,omitempty"`
	Cached    bool              `json:"cached"`
}

// WidgetRect is the pixel rectangle of one widget.
type WidgetRect struct {
	ID string `json:"id"`
	grid.Rect
}

// DiffRequest is the body of /v1/diff.
type DiffRequest struct {
	A grid.Layout `json:"a"`
	B grid.Layout `json:"b"`
}

// DiffResponse lists widgets present in only one of the layouts.
type DiffResponse struct {
	Diff    grid.Layout `json:"diff"`
	Added   grid.Layout `json:"added"`
	Removed grid.Layout `json:"removed"`
}

// GeometryRequest is the body of /v1/geometry. When Pixel is set, the
// response also carries the grid cell it maps to.
type GeometryRequest struct {
	Layout grid.Layout  `json:"layout"`
	Grid   *config.Grid `json:"grid,omitempty"`
	Pixel  *PixelBox    `json:"pixel,omitempty"`
}

// PixelBox is a pixel position and size.
type PixelBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// GridCell is a grid position and size.
type GridCell struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GeometryResponse carries the pixel metrics and rectangles of a layout.
type GeometryResponse struct {
	ColumnWidth float64      `json:"column_width"`
	Height      float64      `json:"height"`
	Rects       []WidgetRect `json:"rects"`
	Cell        *GridCell    `json:"cell,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

func (s *Server) handleOperation(op string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req OperationRequest
		if err := httputil.DecodeJSON(r, &req); err != nil {
			httputil.WriteError(w, err)
			return
		}
		opts := req.Options
		opts.Operation = op
		opts.Logger = s.logger
		if opts.Grid.Columns == 0 {
			opts.Grid = s.grid
		}

		res, err := s.runner.Execute(r.Context(), req.Layout, opts)
		if err != nil {
			s.logger.Debug("operation failed", "op", op, "error", err)
			httputil.WriteError(w, err)
			return
		}

		resp := OperationResponse{
			Layout:  res.Layout,
			Changed: res.Changed,
			Rects:   widgetRects(res.Layout, res.Rects),
			Height:  res.Height,
			Cached:  res.CacheInfo.LayoutHit,
		}
		if resp.Layout == nil {
			resp.Layout = grid.Layout{}
		}
		if resp.Changed == nil {
			resp.Changed = []string{}
		}
		if len(res.Artifacts) > 0 {
			resp.Artifacts = make(map[string]string, len(res.Artifacts))
			for f, data := range res.Artifacts {
				resp.Artifacts[f] = string(data)
			}
		}
		httputil.WriteJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	var req DiffRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, DiffResponse{
		Diff:    orEmpty(grid.Diff(req.A, req.B)),
		Added:   orEmpty(grid.Added(req.A, req.B)),
		Removed: orEmpty(grid.Removed(req.A, req.B)),
	})
}

func (s *Server) handleGeometry(w http.ResponseWriter, r *http.Request) {
	var req GeometryRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	g := s.grid
	if req.Grid != nil {
		opts := pipeline.Options{Grid: *req.Grid}
		opts.SetGridDefaults()
		g = opts.Grid
	}
	if err := grid.Validate(req.Layout, g.Columns); err != nil {
		httputil.WriteError(w, err)
		return
	}

	m := g.Metrics()
	rects := make([]grid.Rect, len(req.Layout))
	for i, wdg := range req.Layout {
		rects[i] = m.WidgetRect(wdg)
	}
	resp := GeometryResponse{
		ColumnWidth: m.ColumnWidth,
		Height:      grid.ContainerHeight(req.Layout, m.RowHeight, m.Padding),
		Rects:       widgetRects(req.Layout, rects),
	}
	if p := req.Pixel; p != nil {
		if p.Width <= 0 || p.Height <= 0 {
			httputil.WriteError(w, errors.New(errors.ErrCodeInvalidInput, "pixel box needs a positive size"))
			return
		}
		x, y := m.PixelToGridPosition(p.X, p.Y, 1, 1)
		cw, ch := m.PixelToGridSize(x, y, p.Width, p.Height)
		x, y = m.PixelToGridPosition(p.X, p.Y, cw, ch)
		resp.Cell = &GridCell{X: x, Y: y, Width: cw, Height: ch}
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func widgetRects(l grid.Layout, rects []grid.Rect) []WidgetRect {
	out := make([]WidgetRect, len(l))
	for i, w := range l {
		out[i] = WidgetRect{ID: w.ID, Rect: rects[i]}
	}
	return out
}

func orEmpty(l grid.Layout) grid.Layout {
	if l == nil {
		return grid.Layout{}
	}
	return l
}
