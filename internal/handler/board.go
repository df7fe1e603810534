package handler

import (
	"net/http"
	"time"

	"github.com/oapi-codegen/runtime"
)

// timeFormat is used for timestamps rendered outside of Bus.
const timeFormat = time.RFC3339

// BoardResponse is the classified board for one location.
type BoardResponse struct {
	Location     string `json:"location"`
	Now          string `json:"now"`
	Upcoming     []Bus  `json:"upcoming"`
	Completed    []Bus  `json:"completed"`
	AllCompleted bool   `json:"all_completed"`
}

// GetBoard handles GET /board?location=.
// The location defaults to Uniworld-1; "Special" shows special routes.
func (s *Server) GetBoard(w http.ResponseWriter, r *http.Request) {
	var location *string
	if err := runtime.BindQueryParameter("form", true, false, "location", r.URL.Query(), &location); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("location is malformed"))
		return
	}
	view := ""
	if location != nil {
		view = *location
	}

	board, err := s.boards.Board(r.Context(), view)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, BoardResponse{
		Location:     board.Location,
		Now:          board.Now.Format(timeFormat),
		Upcoming:     busesToResponse(board.Upcoming),
		Completed:    busesToResponse(board.Completed),
		AllCompleted: board.AllCompleted,
	})
}
