package application

import "time"

// Clock dipakai untuk timestamp pesan dan record, supaya gampang ditest
type Clock interface {
	Now() time.Time
}

// SystemClock implementasi default, pakai time.Now()
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock selalu balikin waktu yang sama
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }
