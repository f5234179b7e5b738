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
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/zintix-labs/dioloto/errs"
	"github.com/zintix-labs/dioloto/server/httperr"
)

// Recover 攔下 handler 的 panic，記一筆 Error 並回 500 JSON。
// log 為 nil 時退回 chi 的 Recoverer（輸出到 stderr）。
func Recover(log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		return chimid.Recoverer
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Error("http.panic",
					slog.String("path", r.URL.Path),
					slog.String("request_id", GetReqId(r)),
					slog.Any("panic", rec),
					slog.String("stack", string(debug.Stack())),
				)
				httperr.Errs(w, errs.NewFatal("internal error").With(fmt.Sprint(rec)))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
