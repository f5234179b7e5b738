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

package httperr

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/zintix-labs/dioloto/errs"
)

// Body 錯誤回應的 JSON 格式
type Body struct {
	Status int    `json:"status"`
	Error  string `json:"error"`
}

// StatusCode 將錯誤映射成 HTTP status code。
//
//   - ctx timeout/cancel → 504/408
//   - errs.Warn         → 400（請求/參數問題，含未知場次、未開放玩法）
//   - errs.Log          → 422（投注單尚未完整，引擎還算不出獎金）
//   - errs.Fatal        → 500
//
// 放在 server/* 而不是 errs，核心錯誤包不依賴 net/http。
func StatusCode(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	}
	var e *errs.E
	if errors.As(err, &e) {
		switch e.ErrLv {
		case errs.Warn:
			return http.StatusBadRequest
		case errs.Log:
			return http.StatusUnprocessableEntity
		}
	}
	return http.StatusInternalServerError
}

// Errs 依錯誤分級寫回 JSON 錯誤。err 為 nil 時不動作。
func Errs(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	status := StatusCode(err)
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Body{Status: status, Error: err.Error()})
}

// Log 只記錄值得告警的錯誤：逾時類記 Warn，5xx 記 Error，其餘 4xx 交給 access log。
func Log(log *slog.Logger, msg string, err error) {
	if err == nil || log == nil {
		return
	}
	status := StatusCode(err)
	switch {
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		log.Warn(msg, slog.Int("status", status), slog.Any("err", err))
	case status >= 500:
		log.Error(msg, slog.Int("status", status), slog.Any("err", err))
	}
}

// JSON 寫出 200 的 JSON 回應
func JSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		Errs(w, errs.Wrap(err, "encode response failed"))
	}
}
