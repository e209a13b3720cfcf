package ui

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/tliron/commonlog"

	"github.com/viktorexe/codeanatomy/engine"
	"github.com/viktorexe/codeanatomy/memsim"
)

//go:embed templates
var embeddedFS embed.FS

// stepDelay paces websocket playback so the visualization is readable.
// The simulation itself runs at full speed.
const stepDelay = 400 * time.Millisecond

const maxClients = 100

type Server struct {
	templates *template.Template
	mux       *http.ServeMux
	upgrader  websocket.Upgrader
	clients   map[*websocket.Conn]bool
	clientsMu sync.RWMutex
	cfg       memsim.Config
	log       commonlog.Logger
}

func NewServer() (*Server, error) {
	tmpl, err := template.ParseFS(embeddedFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		templates: tmpl,
		mux:       http.NewServeMux(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				return strings.HasPrefix(origin, "http://localhost") ||
					strings.HasPrefix(origin, "http://127.0.0.1")
			},
		},
		clients: make(map[*websocket.Conn]bool),
		cfg:     memsim.DefaultConfig(),
		log:     commonlog.GetLogger("ui"),
	}

	s.mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
	s.mux.HandleFunc("GET /", s.handleIndex)

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if err := s.templates.ExecuteTemplate(w, "index.html", nil); err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
	}
}

type analyzeRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

type analyzeResponse struct {
	Success bool           `json:"success"`
	Report  *engine.Report `json:"report,omitempty"`
	Error   string         `json:"error,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if strings.TrimSpace(req.Code) == "" {
		json.NewEncoder(w).Encode(analyzeResponse{Success: false, Error: "No code provided"})
		return
	}

	lang := req.Language
	if lang == "" {
		lang = "c"
	}
	if lang != "c" && lang != "cpp" {
		s.log.Warningf("unsupported language: %s", lang)
		json.NewEncoder(w).Encode(analyzeResponse{Success: false, Error: "Unsupported language"})
		return
	}

	s.log.Infof("analyzing %s code, length: %d characters", lang, len(req.Code))
	report := engine.AnalyzeWithConfig(req.Code, s.cfg)
	json.NewEncoder(w).Encode(analyzeResponse{Success: true, Report: report})
}

type wsMessage struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// handleWebSocket runs one simulation playback per incoming message: the
// client sends {"code": "..."} and receives the report, one snapshot per
// simulation step, then a done marker.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	s.clientsMu.RLock()
	clientCount := len(s.clients)
	s.clientsMu.RUnlock()

	if clientCount >= maxClients {
		http.Error(w, "Maximum clients reached", http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Errorf("websocket upgrade: %s", err.Error())
		return
	}
	defer conn.Close()

	s.clientsMu.Lock()
	s.clients[conn] = true
	s.clientsMu.Unlock()

	defer func() {
		s.clientsMu.Lock()
		delete(s.clients, conn)
		s.clientsMu.Unlock()
	}()

	for {
		var req analyzeRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Errorf("websocket read: %s", err.Error())
			}
			return
		}
		if err := s.streamPlayback(conn, req.Code); err != nil {
			s.log.Errorf("websocket write: %s", err.Error())
			return
		}
	}
}

func (s *Server) streamPlayback(conn *websocket.Conn, code string) error {
	report := engine.AnalyzeWithConfig(code, s.cfg)
	if err := conn.WriteJSON(wsMessage{Type: "report", Data: report}); err != nil {
		return err
	}

	trace, traceErr := memsim.EstimateTrace(report.Features, s.cfg)
	for _, snap := range trace {
		if err := conn.WriteJSON(wsMessage{Type: "step", Data: snap}); err != nil {
			return err
		}
		time.Sleep(stepDelay)
	}

	if traceErr != nil {
		return conn.WriteJSON(wsMessage{Type: "error", Data: traceErr.Error()})
	}
	return conn.WriteJSON(wsMessage{Type: "done"})
}
