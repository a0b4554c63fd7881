package server

import (
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/klauspost/compress/gzip"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// accessLog emits one log line per request, at warn or error level for
// failed requests.
func accessLog(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rw, r)

			kv := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", rw.status,
				"latency", time.Since(start),
				"req", chimid.GetReqID(r.Context()),
			}
			switch {
			case rw.status >= 500:
				logger.Error("request", kv...)
			case rw.status >= 400:
				logger.Warn("request", kv...)
			default:
				logger.Info("request", kv...)
			}
		})
	}
}

var gzipPool sync.Pool

func getGzipWriter(w io.Writer) *gzip.Writer {
	if v := gzipPool.Get(); v != nil {
		gw := v.(*gzip.Writer)
		gw.Reset(w)
		return gw
	}
	gw, _ := gzip.NewWriterLevel(w, gzip.DefaultCompression)
	return gw
}

type gzipResponseWriter struct {
	http.ResponseWriter
	gw       *gzip.Writer
	disabled bool // no body allowed for the status
}

func (g *gzipResponseWriter) WriteHeader(code int) {
	g.Header().Del("Content-Length")
	if code == http.StatusNoContent || code == http.StatusNotModified {
		g.disabled = true
		g.Header().Del("Content-Encoding")
	}
	g.ResponseWriter.WriteHeader(code)
}

func (g *gzipResponseWriter) Write(b []byte) (int, error) {
	if g.disabled {
		return g.ResponseWriter.Write(b)
	}
	g.Header().Del("Content-Length")
	return g.gw.Write(b)
}

// compression gzips responses for clients that accept it.
func compression(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead || !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Add("Vary", "Accept-Encoding")

		gw := getGzipWriter(w)
		cw := &gzipResponseWriter{ResponseWriter: w, gw: gw}
		defer func() {
			if cw.disabled {
				gw.Reset(io.Discard)
			}
			_ = gw.Close()
			gzipPool.Put(gw)
		}()

		next.ServeHTTP(cw, r)
	})
}
