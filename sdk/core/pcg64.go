// Package core implements the PCG64 random number generator.
//
// The PCG algorithm is designed by Melissa O'Neill; the state machine itself
// comes from math/rand/v2, this file only adds seeding and snapshots.

package core

import (
	r2 "math/rand/v2"
)

// PCG64 以 math/rand/v2 的 PCG 為狀態，r2.Rand 提供無偏的 bounded 取樣。
type PCG64 struct {
	src *r2.PCG
	rnd *r2.Rand
}

// NewPCG64 以 crypto/rand 產生的 seed 建立 PCG64，用於不要求重現的場合（例如自動選號）。
func NewPCG64() *PCG64 {
	return NewPCG64WithSeed(RandomSeed())
}

// NewPCG64WithSeed 以指定 seed 建立 PCG64；相同 seed 產生相同序列。
func NewPCG64WithSeed(seed int64) *PCG64 {
	x := uint64(seed) ^ 0x9e3779b97f4a7c15
	src := r2.NewPCG(splitmix64(x), splitmix64(x^0xDA942042E4DD58B5))
	return &PCG64{src: src, rnd: r2.New(src)}
}

func (r *PCG64) Uint64() uint64 {
	return r.src.Uint64()
}

// IntN 產出[0,n) 的整數，若 max <= 0 回傳 -1
func (r *PCG64) IntN(max int) int {
	if max <= 0 {
		return -1
	}
	return r.rnd.IntN(max)
}

// Float64 產出 [0,1) 浮點數（53 bits 精度）
func (r *PCG64) Float64() float64 {
	return r.rnd.Float64()
}

func (r *PCG64) Restore(data []byte) error {
	return r.src.UnmarshalBinary(data)
}

func (r *PCG64) Snapshot() ([]byte, error) {
	return r.src.MarshalBinary()
}

// splitmix64 將 seed 展開成兩個 64-bit 狀態。
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
