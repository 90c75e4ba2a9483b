package geometry

// Handle identifies which part of a shape a pointer is over.
type Handle int

const (
	HandleBody Handle = iota
	HandleStart
	HandleEnd
)

func (h Handle) String() string {
	switch h {
	case HandleStart:
		return "start"
	case HandleEnd:
		return "end"
	default:
		return "body"
	}
}

// Hit is the result of a pointer hit test.
type Hit struct {
	ItemID string
	RowID  string
	Handle Handle
}

// HitTest finds the item under (x, y). Items drawn later win.
func (l ChartLayout) HitTest(x, y, tolerance float64) (Hit, bool) {
	row, ok := l.RowAt(y)
	if !ok {
		return Hit{}, false
	}
	return l.HitRow(row.RowID, x, tolerance)
}

// HitRow finds the item of a row under x. Bar edges become resize handles
// only when the bar is wide enough to keep a body between them.
func (l ChartLayout) HitRow(rowID string, x, tolerance float64) (Hit, bool) {
	items := l.ItemsInRow(rowID)
	for i := len(items) - 1; i >= 0; i-- {
		p := items[i]
		if p.Kind == ShapePoint {
			if abs(x-p.X) <= tolerance {
				return Hit{ItemID: p.ItemID, RowID: rowID, Handle: HandleBody}, true
			}
			continue
		}

		if x < p.X-tolerance || x > p.EndX()+tolerance {
			continue
		}
		h := HandleBody
		if p.Width > 2*tolerance {
			switch {
			case abs(x-p.X) <= tolerance:
				h = HandleStart
			case abs(x-p.EndX()) <= tolerance:
				h = HandleEnd
			}
		}
		return Hit{ItemID: p.ItemID, RowID: rowID, Handle: h}, true
	}
	return Hit{}, false
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
