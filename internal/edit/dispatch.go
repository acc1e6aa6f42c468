package edit

import (
	"fmt"
	"strconv"

	"github.com/OCAP2/mapedit/internal/dispatcher"
	"github.com/OCAP2/mapedit/internal/geo"
	"github.com/OCAP2/mapedit/internal/util"
	"github.com/OCAP2/mapedit/pkg/core"
)

// Commands understood by the session. Positions are passed as "lat,lng".
const (
	CmdMarkerAdd      = ":MARKER:ADD:"      // [position] -> marker id
	CmdMarkerDrag     = ":MARKER:DRAG:"     // [id]
	CmdMarkerMove     = ":MARKER:MOVE:"     // [id, position]
	CmdMarkerDelete   = ":MARKER:DELETE:"   // [id]
	CmdMarkerTransfer = ":MARKER:TRANSFER:" // [id]
	CmdShapeSelect    = ":SHAPE:SELECT:"    // [name] or [name, part]
	CmdHoleStart      = ":HOLE:START:"      // []
	CmdShapeVisible   = ":SHAPE:VISIBLE:"   // [name, bool]
	CmdMarkersVisible = ":MARKERS:VISIBLE:" // [name, bool]
	CmdHolePrune      = ":HOLE:PRUNE:"      // [name] -> pruned count
	CmdShapeClear     = ":SHAPE:CLEAR:"     // []
)

// RegisterHandlers registers all editing handlers with the dispatcher.
// Every handler runs synchronously; edits are applied in dispatch order.
func (s *Session) RegisterHandlers(d *dispatcher.Dispatcher) {
	d.Register(CmdMarkerAdd, s.handleMarkerAdd, dispatcher.Logged())
	d.Register(CmdMarkerDrag, s.handleMarkerDrag, dispatcher.Logged())
	d.Register(CmdMarkerMove, s.handleMarkerMove, dispatcher.Logged())
	d.Register(CmdMarkerDelete, s.handleMarkerDelete, dispatcher.Logged())
	d.Register(CmdMarkerTransfer, s.handleMarkerTransfer, dispatcher.Logged())
	d.Register(CmdShapeSelect, s.handleShapeSelect, dispatcher.Logged())
	d.Register(CmdHoleStart, s.handleHoleStart, dispatcher.Logged())
	d.Register(CmdShapeVisible, s.handleShapeVisible, dispatcher.Logged())
	d.Register(CmdMarkersVisible, s.handleMarkersVisible, dispatcher.Logged())
	d.Register(CmdHolePrune, s.handleHolePrune, dispatcher.Logged())
	d.Register(CmdShapeClear, s.handleShapeClear, dispatcher.Logged())
}

func expectArgs(e dispatcher.Event, lo, hi int) ([]string, error) {
	if len(e.Args) < lo || len(e.Args) > hi {
		if lo == hi {
			return nil, fmt.Errorf("%s: expected %d args, got %d", e.Command, lo, len(e.Args))
		}
		return nil, fmt.Errorf("%s: expected %d to %d args, got %d", e.Command, lo, hi, len(e.Args))
	}
	return util.CleanArgs(e.Args), nil
}

func (s *Session) handleMarkerAdd(e dispatcher.Event) (any, error) {
	args, err := expectArgs(e, 1, 1)
	if err != nil {
		return nil, err
	}
	pos, err := geo.LatLngFromString(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to add marker: %w", err)
	}
	return string(s.AddMarker(pos).ID), nil
}

func (s *Session) handleMarkerDrag(e dispatcher.Event) (any, error) {
	args, err := expectArgs(e, 1, 1)
	if err != nil {
		return nil, err
	}
	return nil, s.DragEnd(core.MarkerID(args[0]))
}

func (s *Session) handleMarkerMove(e dispatcher.Event) (any, error) {
	args, err := expectArgs(e, 2, 2)
	if err != nil {
		return nil, err
	}
	pos, err := geo.LatLngFromString(args[1])
	if err != nil {
		return nil, fmt.Errorf("failed to move marker: %w", err)
	}
	return nil, s.MoveMarker(core.MarkerID(args[0]), pos)
}

func (s *Session) handleMarkerDelete(e dispatcher.Event) (any, error) {
	args, err := expectArgs(e, 1, 1)
	if err != nil {
		return nil, err
	}
	return nil, s.DeleteMarker(core.MarkerID(args[0]))
}

func (s *Session) handleMarkerTransfer(e dispatcher.Event) (any, error) {
	args, err := expectArgs(e, 1, 1)
	if err != nil {
		return nil, err
	}
	return nil, s.Transfer(core.MarkerID(args[0]))
}

func (s *Session) handleShapeSelect(e dispatcher.Event) (any, error) {
	args, err := expectArgs(e, 1, 2)
	if err != nil {
		return nil, err
	}
	part := 0
	if len(args) == 2 {
		part, err = strconv.Atoi(args[1])
		if err != nil {
			return nil, fmt.Errorf("invalid part %q: %w", args[1], err)
		}
	}
	return nil, s.Select(args[0], part)
}

func (s *Session) handleHoleStart(e dispatcher.Event) (any, error) {
	if _, err := expectArgs(e, 0, 0); err != nil {
		return nil, err
	}
	_, err := s.StartHole()
	return nil, err
}

func (s *Session) handleShapeVisible(e dispatcher.Event) (any, error) {
	name, visible, err := nameAndFlag(e)
	if err != nil {
		return nil, err
	}
	return nil, s.SetVisible(name, visible)
}

func (s *Session) handleMarkersVisible(e dispatcher.Event) (any, error) {
	name, visible, err := nameAndFlag(e)
	if err != nil {
		return nil, err
	}
	return nil, s.SetMarkersVisible(name, visible)
}

func (s *Session) handleHolePrune(e dispatcher.Event) (any, error) {
	args, err := expectArgs(e, 1, 1)
	if err != nil {
		return nil, err
	}
	n, err := s.PruneHoles(args[0])
	if err != nil {
		return nil, err
	}
	return strconv.Itoa(n), nil
}

func (s *Session) handleShapeClear(e dispatcher.Event) (any, error) {
	if _, err := expectArgs(e, 0, 0); err != nil {
		return nil, err
	}
	s.Clear()
	return nil, nil
}

func nameAndFlag(e dispatcher.Event) (string, bool, error) {
	args, err := expectArgs(e, 2, 2)
	if err != nil {
		return "", false, err
	}
	visible, err := util.ParseBoolArg(args[1])
	if err != nil {
		return "", false, err
	}
	return args[0], visible, nil
}
