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

package errs

import (
	"errors"
	"fmt"
)

// ErrLevel : Error 分級，讓最上層（HTTP 邊界、CLI）理解問題的嚴重程度
type ErrLevel uint8

const (
	None  ErrLevel = iota
	Fatal          // 合約違反 / 系統錯誤，呼叫端不應重試
	Warn           // 請求或參數錯誤
	Log            // 可預期的狀態（例如投注單尚未填完），只需記錄
)

var errLvMap = map[ErrLevel]string{
	None:  "",
	Fatal: "fatal",
	Warn:  "warn",
	Log:   "log",
}

func (l ErrLevel) String() string {
	if str, ok := errLvMap[l]; ok {
		return str
	}
	return ""
}

// E 是統一的錯誤型別。
// Message 為主訊息；Extra 為呼叫端追加的上下文；Cause 可串接下層錯誤。
//
// 兩個 *E 只要 Message 與 ErrLv 相同，errors.Is 就視為同一種錯誤，
// 因此套件可以宣告哨兵錯誤，再用 With 附上細節回傳。
type E struct {
	Message string
	Extra   string
	Cause   error
	ErrLv   ErrLevel
}

func (e *E) Error() string {
	base := fmt.Sprintf("errlv=%s %s", e.ErrLv, e.Message)
	if e.Extra != "" {
		base += " | extra: " + e.Extra
	}
	if e.Cause != nil {
		base += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return base
}

// Unwrap 讓 errors.Is / errors.As 能夠向下展開。
func (e *E) Unwrap() error { return e.Cause }

// Is 比對同訊息、同等級的 *E。
func (e *E) Is(target error) bool {
	t, ok := target.(*E)
	if !ok || t == nil {
		return false
	}
	return e.Message == t.Message && e.ErrLv == t.ErrLv
}

// With 回傳一個帶有額外上下文的副本，原本的哨兵錯誤不會被修改。
func (e *E) With(extra string) *E {
	cp := *e
	cp.Extra = extra
	return &cp
}

// Withf 與 With 相同，但接受格式化字串。
func (e *E) Withf(format string, a ...any) *E {
	return e.With(fmt.Sprintf(format, a...))
}

func New(errLv ErrLevel, msg string) *E {
	return &E{Message: msg, ErrLv: errLv}
}

func NewFatal(msg string) *E {
	return &E{Message: msg, ErrLv: Fatal}
}

func NewWarn(msg string) *E {
	return &E{Message: msg, ErrLv: Warn}
}

func NewLog(msg string) *E {
	return &E{Message: msg, ErrLv: Log}
}

func Fatalf(format string, a ...any) *E {
	return NewFatal(fmt.Sprintf(format, a...))
}

func Warnf(format string, a ...any) *E {
	return NewWarn(fmt.Sprintf(format, a...))
}

func Logf(format string, a ...any) *E {
	return NewLog(fmt.Sprintf(format, a...))
}

// Wrap 以給定訊息包裝底層錯誤。
//
// ErrLevel 規則：
//   - cause 已經是 *E：沿用其 ErrLv。
//   - cause 來自標準庫或三方依賴：一律視為 Fatal。
//
// 若錯誤是「可預期且可處理」的情境，請直接建立 *E 並指定等級，不要 Wrap。
func Wrap(cause error, msg string) *E {
	r := New(Level(cause), msg)
	if r.ErrLv == None {
		r.ErrLv = Fatal
	}
	r.Cause = cause
	return r
}

// Level 取出錯誤鏈上第一個 *E 的等級；非 *E 的錯誤回傳 None。
func Level(err error) ErrLevel {
	if e, ok := AsErr(err); ok {
		return e.ErrLv
	}
	return None
}

func AsErr(err error) (*E, bool) {
	var e *E
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
