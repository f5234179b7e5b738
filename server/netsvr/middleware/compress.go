// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package middleware

import (
	"bufio"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// encoder gzip.Writer 與 zstd.Encoder 的共同行為
type encoder interface {
	io.Writer
	Reset(w io.Writer)
	Flush() error
	Close() error
}

// codec 一種 Content-Encoding 與其 writer pool
type codec struct {
	name string
	pool sync.Pool
}

func (c *codec) get(w io.Writer) encoder {
	e := c.pool.Get().(encoder)
	e.Reset(w)
	return e
}

// put 關閉後歸還。discard 為 true 時先把輸出導向 io.Discard，footer 不會寫進無 body 的回應。
func (c *codec) put(e encoder, discard bool) {
	if discard {
		e.Reset(io.Discard)
	}
	_ = e.Close()
	c.pool.Put(e)
}

// 協商順序：zstd 優先
var codecs = []*codec{
	{name: "zstd", pool: sync.Pool{New: func() any {
		zw, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest), zstd.WithEncoderConcurrency(1))
		if err != nil {
			panic(err)
		}
		return zw
	}}},
	{name: "gzip", pool: sync.Pool{New: func() any {
		gw, _ := gzip.NewWriterLevel(nil, gzip.DefaultCompression)
		return gw
	}}},
}

func negotiate(r *http.Request) *codec {
	accept := r.Header.Get("Accept-Encoding")
	if accept == "" {
		return nil
	}
	for _, c := range codecs {
		if strings.Contains(accept, c.name) {
			return c
		}
	}
	return nil
}

func isWebSocketUpgrade(r *http.Request) bool {
	return strings.Contains(strings.ToLower(r.Header.Get("Connection")), "upgrade") ||
		r.Header.Get("Upgrade") != ""
}

// 1xx / 204 / 304 沒有 body
func isNoBodyStatus(code int) bool {
	return (code >= 100 && code < 200) || code == http.StatusNoContent || code == http.StatusNotModified
}

type compressWriter struct {
	http.ResponseWriter
	enc      encoder
	disabled bool
}

func (cw *compressWriter) Write(b []byte) (int, error) {
	if cw.disabled {
		return cw.ResponseWriter.Write(b)
	}
	cw.Header().Del("Content-Length")
	if cw.Header().Get("Content-Type") == "" {
		cw.Header().Set("Content-Type", http.DetectContentType(b))
	}
	return cw.enc.Write(b)
}

func (cw *compressWriter) WriteHeader(code int) {
	cw.Header().Del("Content-Length")
	if isNoBodyStatus(code) {
		cw.disabled = true
		cw.Header().Del("Content-Encoding")
		cw.Header().Del("Vary")
	}
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *compressWriter) Flush() {
	if !cw.disabled {
		_ = cw.enc.Flush()
	}
	if f, ok := cw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (cw *compressWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := cw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("underlying response writer does not support Hijacker")
	}
	return hj.Hijack()
}

// Compression 依 Accept-Encoding 以 zstd 或 gzip 壓縮回應。
// 模擬報表的 JSON 動輒數十 KB，壓縮後通常剩一成左右。
func Compression(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead || isWebSocketUpgrade(r) || w.Header().Get("Content-Encoding") != "" {
			next.ServeHTTP(w, r)
			return
		}
		c := negotiate(r)
		if c == nil {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Content-Encoding", c.name)
		w.Header().Add("Vary", "Accept-Encoding")

		cw := &compressWriter{ResponseWriter: w, enc: c.get(w)}
		defer func() { c.put(cw.enc, cw.disabled) }()
		next.ServeHTTP(cw, r)
	})
}
