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

package stats

import "sort"

// WinBuckets 贏倍區間
//
// 區間: [0,0], (0,1), [1,2), [2,10), [10,50), [50,100), [100,500), [500,1000), [1000,5000), [5000,+inf)
// 最高一檔對應 NAP5 這類五萬倍的獎項。
type WinBuckets struct {
	edges  []float64
	labels []string
}

// Buckets 預設區間，請勿修改
var Buckets = &WinBuckets{
	edges:  []float64{0, 1, 2, 10, 50, 100, 500, 1000, 5000},
	labels: []string{"[0,0]", "(0,1)", "[1,2)", "[2,10)", "[10,50)", "[50,100)", "[100,500)", "[500,1000)", "[1000,5000)", "[5000,+inf)"},
}

func (b *WinBuckets) WinBucketStr() []string {
	return b.labels
}

func (b *WinBuckets) Len() int {
	return len(b.labels)
}

// Index 贏倍 -> 區間位置
func (b *WinBuckets) Index(mult float64) int {
	if mult <= 0 {
		return 0
	}
	// 第一個 > mult 的邊界
	i := sort.Search(len(b.edges), func(i int) bool { return b.edges[i] > mult })
	return i
}
