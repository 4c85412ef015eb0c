package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ryokoh/cueline/internal/editor"
)

func NewRouter(cfg ServerConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(cfg.Logger))
	r.Use(LoggingMiddleware(cfg.Logger))

	r.Get("/health", healthHandler())

	r.Post("/subtitles/load", loadHandler(cfg))
	r.Get("/subtitles", listCuesHandler(cfg))
	r.Get("/subtitles/export", exportHandler(cfg))
	r.Get("/subtitles/search", searchHandler(cfg))
	r.Post("/subtitles", insertHandler(cfg))
	r.Put("/subtitles/{index}", editHandler(cfg))
	r.Post("/subtitles/{index}/text", setTextHandler(cfg))
	r.Delete("/subtitles/{index}", deleteHandler(cfg))

	r.Post("/gestures/pan", panHandler(cfg))
	r.Post("/gestures/drag", dragHandler(cfg))
	r.Post("/gestures/move", moveHandler(cfg))
	r.Post("/gestures/up", pointerUpHandler(cfg))

	r.Post("/timeline/zoom", zoomHandler(cfg))
	r.Post("/playback/seek", seekHandler(cfg))
	r.Post("/playback/tick", tickHandler(cfg))
	r.Get("/timeline/frame", frameHandler(cfg))

	return r
}

func healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: "0.1.0"})
	}
}

func loadHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoadRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		var count int
		cfg.Editor.With(func(s *editor.Session) {
			s.LoadSRT(req.Content)
			count = len(s.Cues)
		})

		WriteJSON(w, http.StatusOK, LoadResponse{Cues: count})
	}
}

func listCuesHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var resp CuesResponse
		cfg.Editor.With(func(s *editor.Session) {
			resp.Cues = make([]CueResponse, len(s.Cues))
			for i, c := range s.Cues {
				resp.Cues[i] = cueToResponse(c, i == s.ActiveIndex)
			}
		})
		WriteJSON(w, http.StatusOK, resp)
	}
}

func exportHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var content string
		cfg.Editor.With(func(s *editor.Session) {
			content = s.ExportSRT()
		})
		w.Header().Set("Content-Type", "application/x-subrip")
		w.Header().Set("Content-Disposition", `attachment; filename="subtitles.srt"`)
		w.Write([]byte(content))
	}
}

func searchHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term := r.URL.Query().Get("q")
		resp := SearchResponse{Indices: []int{}}
		cfg.Editor.With(func(s *editor.Session) {
			resp.Indices = s.Cues.Search(term)
		})
		if resp.Indices == nil {
			resp.Indices = []int{}
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

func insertHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req InsertRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		index := -1
		cfg.Editor.With(func(s *editor.Session) {
			index = s.InsertAt(req.AtSeconds)
		})
		if index < 0 {
			WriteError(w, http.StatusConflict, "a gesture is in progress", "GESTURE_ACTIVE")
			return
		}

		WriteJSON(w, http.StatusCreated, InsertResponse{Index: index})
	}
}

func editHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, ok := indexParam(w, r)
		if !ok {
			return
		}

		var req EditRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		edit := editor.FieldEdit{
			Start: editor.TimeFields{
				Hours:        req.Start.Hours,
				Minutes:      req.Start.Minutes,
				Seconds:      req.Start.Seconds,
				Milliseconds: req.Start.Milliseconds,
			},
			End: editor.TimeFields{
				Hours:        req.End.Hours,
				Minutes:      req.End.Minutes,
				Seconds:      req.End.Seconds,
				Milliseconds: req.End.Milliseconds,
			},
			Text: req.Text,
		}

		var warnings []string
		var err error
		conflict := false
		cfg.Editor.With(func(s *editor.Session) {
			if s.PointerGestureActive() {
				conflict = true
				return
			}
			warnings, err = s.ApplyFieldEdit(index, edit)
		})
		if conflict {
			WriteError(w, http.StatusConflict, "a gesture is in progress", "GESTURE_ACTIVE")
			return
		}
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error(), "INVALID_FIELDS")
			return
		}
		if warnings == nil {
			warnings = []string{}
		}

		WriteJSON(w, http.StatusOK, EditResponse{Warnings: warnings})
	}
}

func setTextHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, ok := indexParam(w, r)
		if !ok {
			return
		}

		var req TextRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		changed := false
		cfg.Editor.With(func(s *editor.Session) {
			changed = s.SetCueText(index, req.Text)
		})
		if !changed {
			WriteError(w, http.StatusNotFound, "cue not found", "NOT_FOUND")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func deleteHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, ok := indexParam(w, r)
		if !ok {
			return
		}

		// deletion is unrecoverable, so the caller must say so
		if r.URL.Query().Get("confirm") != "true" {
			WriteError(w, http.StatusBadRequest, "deletion requires confirm=true", "CONFIRM_REQUIRED")
			return
		}

		deleted := false
		conflict := false
		cfg.Editor.With(func(s *editor.Session) {
			if s.PointerGestureActive() {
				conflict = true
				return
			}
			deleted = s.Delete(index, true)
		})
		if conflict {
			WriteError(w, http.StatusConflict, "a gesture is in progress", "GESTURE_ACTIVE")
			return
		}
		if !deleted {
			WriteError(w, http.StatusNotFound, "cue not found", "NOT_FOUND")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func panHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PanRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		started := false
		cfg.Editor.With(func(s *editor.Session) {
			started = s.BeginPan(req.PointerX)
		})
		if !started {
			WriteError(w, http.StatusConflict, "another gesture is in progress", "GESTURE_ACTIVE")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func dragHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DragRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		part := editor.DragPart(req.Part)
		switch part {
		case editor.PartStartEdge, editor.PartEndEdge, editor.PartWholeBody:
		default:
			WriteError(w, http.StatusBadRequest, "part must be start, end or body", "BAD_REQUEST")
			return
		}

		started := false
		cfg.Editor.With(func(s *editor.Session) {
			started = s.BeginCueDrag(req.Index, part, req.PointerX)
		})
		if !started {
			WriteError(w, http.StatusConflict, "drag not started", "GESTURE_ACTIVE")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func moveHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MoveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		changed := false
		cfg.Editor.With(func(s *editor.Session) {
			changed = s.PointerMove(req.PointerX)
		})

		WriteJSON(w, http.StatusOK, MoveResponse{Changed: changed})
	}
}

func pointerUpHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg.Editor.With(func(s *editor.Session) {
			s.PointerUp()
		})
		w.WriteHeader(http.StatusNoContent)
	}
}

func zoomHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ZoomRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		if req.Factor <= 0 {
			WriteError(w, http.StatusBadRequest, "factor must be positive", "BAD_REQUEST")
			return
		}

		cfg.Editor.With(func(s *editor.Session) {
			s.ZoomBy(req.Factor)
		})
		w.WriteHeader(http.StatusNoContent)
	}
}

func seekHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SeekRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		cfg.Editor.With(func(s *editor.Session) {
			s.Seek(req.Seconds)
		})
		w.WriteHeader(http.StatusNoContent)
	}
}

func tickHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TickRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		var resp TickResponse
		cfg.Editor.With(func(s *editor.Session) {
			result := s.Tick(req.CurrentTime, req.Playing)
			resp = TickResponse{
				ActiveIndex:  result.ActiveIndex,
				CursorX:      result.CursorX,
				ScrollTarget: result.ScrollTarget,
				Scrolled:     result.Scrolled,
				Label:        s.PlayheadLabel(),
			}
		})

		WriteJSON(w, http.StatusOK, resp)
	}
}

func frameHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var resp FrameResponse
		cfg.Editor.With(func(s *editor.Session) {
			resp = frameToResponse(s.Frame())
		})
		WriteJSON(w, http.StatusOK, resp)
	}
}

func indexParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "index")
	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 {
		WriteError(w, http.StatusBadRequest, "invalid cue index", "BAD_REQUEST")
		return 0, false
	}
	return index, true
}
