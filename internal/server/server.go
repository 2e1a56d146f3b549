// Package server exposes stored runs over a read-only JSON API.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/shirou/gopsutil/process"

	"github.com/san-kum/diffsim/internal/storage"
)

// Server answers queries about the runs held in a Store.
type Server struct {
	store  *storage.Store
	logger *log.Logger
	router *mux.Router
}

func New(store *storage.Store) *Server {
	s := &Server{
		store:  store,
		logger: log.New(os.Stderr, "", log.LstdFlags),
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/runs", s.listRuns).Methods(http.MethodGet)
	r.HandleFunc("/api/runs/{id}", s.runDetails).Methods(http.MethodGet)
	r.HandleFunc("/api/runs/{id}/frames/{n}", s.frame).Methods(http.MethodGet)
	r.HandleFunc("/api/status", s.status).Methods(http.MethodGet)
	r.HandleFunc("/api/profile", s.profile).Methods(http.MethodGet)
	s.router = r

	return s
}

func (s *Server) SetLogger(l *log.Logger) { s.logger = l }

// Handler returns the routed API, for mounting or testing.
func (s *Server) Handler() http.Handler { return s.router }

// Serve listens on addr and blocks until ctx is done. onReady receives
// the bound URL, which matters when addr asks for a random port.
func (s *Server) Serve(ctx context.Context, addr string, onReady func(url string)) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("http://localhost:%d", listener.Addr().(*net.TCPAddr).Port)
	s.logger.Printf("serving runs from %s at %s", s.store.BaseDir(), url)
	if onReady != nil {
		onReady(url)
	}

	srv := &http.Server{Handler: s.router, ReadHeaderTimeout: 5 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(listener) }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) listRuns(w http.ResponseWriter, _ *http.Request) {
	runs, err := s.store.List()
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, runs)
}

func (s *Server) runDetails(w http.ResponseWriter, r *http.Request) {
	meta, err := s.store.Load(mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, statusOf(err), err)
		return
	}
	s.writeJSON(w, meta)
}

type frameRsp struct {
	Run    string    `json:"run"`
	Index  int       `json:"index"`
	Time   float64   `json:"time"`
	Shape  []int     `json:"shape"`
	Values []float64 `json:"values"`
}

func (s *Server) frame(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	n, err := strconv.Atoi(vars["n"])
	if err != nil {
		s.fail(w, http.StatusBadRequest, fmt.Errorf("bad frame index %q", vars["n"]))
		return
	}

	meta, d, err := s.store.LoadResult(vars["id"])
	if err != nil {
		s.fail(w, statusOf(err), err)
		return
	}

	if n < 0 {
		n += d.Field.Steps()
	}
	if n < 0 || n >= d.Field.Steps() {
		s.fail(w, http.StatusNotFound,
			fmt.Errorf("frame %s out of range [0, %d)", vars["n"], d.Field.Steps()))
		return
	}

	s.writeJSON(w, frameRsp{
		Run:    meta.ID,
		Index:  n,
		Time:   d.Time.At(n),
		Shape:  d.Field.SpatialShape(),
		Values: d.Field.Slice(n),
	})
}

type statusRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
	DataDir    string  `json:"data_dir"`
}

func (s *Server) status(w http.ResponseWriter, _ *http.Request) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}

	cpuPercent, err := proc.CPUPercent()
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}

	memInfo, err := proc.MemoryInfo()
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, statusRsp{
		CPUPercent: cpuPercent,
		MemorySize: memInfo.RSS,
		DataDir:    s.store.BaseDir(),
	})
}

const maxProfile = 30 * time.Second

// profile samples the CPU for ?seconds= (default 1) and returns the
// parsed profile.
func (s *Server) profile(w http.ResponseWriter, r *http.Request) {
	d := time.Second
	if q := r.URL.Query().Get("seconds"); q != "" {
		secs, err := strconv.ParseFloat(q, 64)
		if err != nil || secs <= 0 {
			s.fail(w, http.StatusBadRequest, fmt.Errorf("bad profile duration %q", q))
			return
		}
		d = min(time.Duration(secs*float64(time.Second)), maxProfile)
	}

	buf := bytes.NewBuffer(nil)
	if err := pprof.StartCPUProfile(buf); err != nil {
		s.fail(w, http.StatusConflict, err)
		return
	}
	select {
	case <-time.After(d):
	case <-r.Context().Done():
	}
	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, prof)
}

func statusOf(err error) int {
	if errors.Is(err, storage.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

type errorRsp struct {
	Error string `json:"error"`
}

func (s *Server) fail(w http.ResponseWriter, code int, err error) {
	if code >= http.StatusInternalServerError {
		s.logger.Printf("server: %v", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	data, _ := json.Marshal(errorRsp{Error: err.Error()})
	w.Write(data)
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(data); err != nil {
		s.logger.Printf("server: %v", err)
	}
}
