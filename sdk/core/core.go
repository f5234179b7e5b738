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

// Package core 提供開獎與自動選號共用的亂數核心。
package core

import (
	"crypto/rand"
	"math"
	"math/big"
)

// PRNG 定義 Core 所需的亂數來源，需同時支援取樣與狀態保存/還原。
type PRNG interface {
	RAND
	Restorable
}

// Restorable 定義可快照與還原的狀態介面。
type Restorable interface {
	Snapshot() ([]byte, error)
	Restore([]byte) error
}

// RAND 定義核心亂數取樣能力。
//
// 選號與開獎只需要 IntN；Uint64 / Float64 保留給統計與種子派生使用。
type RAND interface {
	// Uint64 回傳非負 uint64 亂數。
	Uint64() uint64
	// Float64 回傳 [0,1) 的浮點亂數。
	Float64() float64
	// IntN 回傳 [0,max) 的 int 亂數，若 max <= 0 回傳 -1。
	IntN(int) int
}

// PRNGFactory 以 seed 建立 PRNG。
//
// 合約：同一實作同一版本下，New(seed) 必須是決定性的，
// 模擬器派生多個 worker 時依賴這個性質做重現。
type PRNGFactory interface {
	New(int64) PRNG
}

// DefaultPRNG 實作預設的 PRNGFactory（PCG64）。
type DefaultPRNG struct{}

func (d *DefaultPRNG) New(seed int64) PRNG {
	return NewPCG64WithSeed(seed)
}

func Default() *DefaultPRNG {
	return &DefaultPRNG{}
}

// RandomSeed 由 crypto/rand 產生非負 int64 seed。
func RandomSeed() int64 {
	seed, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
	if err != nil {
		// crypto/rand 在支援的平台上不會失敗
		panic(err)
	}
	return seed.Int64()
}

// Core 封裝 PRNG，並提供選號常用的取樣方法。
type Core struct {
	PRNG
}

func New(rng PRNG) *Core {
	return &Core{rng}
}

// Pick 從列表中隨機選取一個元素，若列表為空回傳 -1
func (c *Core) Pick(src []int) int {
	if len(src) == 0 {
		return -1
	}
	return src[c.IntN(len(src))]
}

// ShuffleInts 以 Fisher-Yates 就地重排。
func (c *Core) ShuffleInts(src []int) {
	for i := len(src) - 1; i > 0; i-- {
		j := c.IntN(i + 1)
		src[i], src[j] = src[j], src[i]
	}
}

// Distinct 以拒絕取樣從 [lo,hi] 抽出 n 個互不重複的整數，保留抽出順序。
//
// 若 n 超過區間大小或 n <= 0 回傳 nil。
func Distinct(r RAND, n, lo, hi int) []int {
	span := hi - lo + 1
	if n <= 0 || span <= 0 || n > span {
		return nil
	}
	out := make([]int, 0, n)
	seen := make(map[int]struct{}, n)
	for len(out) < n {
		v := lo + r.IntN(span)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
