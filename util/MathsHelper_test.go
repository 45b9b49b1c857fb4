package util

import (
	"math"
	"testing"
)

func TestMaxMin(t *testing.T) {
	if Max(3, 7, 5) != 7 {
		t.Errorf("Max(3, 7, 5) = %d; want 7", Max(3, 7, 5))
	}
	if Min(3, 7, 5) != 3 {
		t.Errorf("Min(3, 7, 5) = %d; want 3", Min(3, 7, 5))
	}
	if Max[uint32]() != 0 {
		t.Errorf("Max() of nothing should be zero value")
	}

	nan := float32(math.NaN())
	if r := Max[float32](1, nan, 2); r == r {
		t.Errorf("Max with NaN should return NaN, got %f", r)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi float32
		expected  float32
	}{
		{-1, 0, 1, 0},
		{0.5, 0, 1, 0.5},
		{2, 0, 1, 1},
	}

	for _, tt := range tests {
		result := Clamp(tt.v, tt.lo, tt.hi)
		if result != tt.expected {
			t.Errorf("Clamp(%f, %f, %f) = %f; want %f", tt.v, tt.lo, tt.hi, result, tt.expected)
		}
	}

	if Clamp(300, 0, 255) != 255 {
		t.Errorf("Clamp(300, 0, 255) should be 255")
	}
}

func TestClampToByte(t *testing.T) {
	tests := []struct {
		input    float32
		expected uint8
	}{
		{-2, 0},
		{0, 0},
		{0.99, 0},
		{1, 1},
		{127.5, 127},
		{254.9, 254},
		{255, 255},
		{510, 255},
		{float32(math.Inf(1)), 255},
		{float32(math.Inf(-1)), 0},
		{float32(math.NaN()), 0},
	}

	for _, tt := range tests {
		result := ClampToByte(tt.input)
		if result != tt.expected {
			t.Errorf("ClampToByte(%f) = %d; want %d", tt.input, result, tt.expected)
		}
	}
}

func TestRoundToUint32(t *testing.T) {
	tests := []struct {
		input    float32
		expected uint32
	}{
		{0, 0},
		{0.49, 0},
		{0.5, 1},
		{1.5, 2},
		{2.5, 3},
		{24.999, 25},
		{-3, 0},
		{float32(math.NaN()), 0},
	}

	for _, tt := range tests {
		result := RoundToUint32(tt.input)
		if result != tt.expected {
			t.Errorf("RoundToUint32(%f) = %d; want %d", tt.input, result, tt.expected)
		}
	}
}
