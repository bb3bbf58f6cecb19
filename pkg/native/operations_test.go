// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package native

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperations_Enqueue(t *testing.T) {
	ops := newOperations()
	for i := 0; i < 100; i++ {
		results := make([]int, 16)
		for i := range results {
			func(j int) {
				ops.Enqueue(func() {
					results[j] = j * j
				})
			}(i)
		}

		ops.Done()
		expected := []int{0, 1, 4, 9, 16, 25, 36, 49, 64, 81, 100, 121, 144, 169, 196, 225}
		assert.Equal(t, expected, results)
	}
}

func TestOperations_Order(t *testing.T) {
	ops := newOperations()

	var order []int
	for i := 0; i < 32; i++ {
		j := i
		ops.Enqueue(func() { order = append(order, j) })
	}
	ops.Done()

	for i := range order {
		assert.Equal(t, i, order[i])
	}
	assert.Len(t, order, 32)
}

func TestOperations_Done(*testing.T) {
	ops := newOperations()
	ops.Done()
}

func TestOperations_GracefulClose(t *testing.T) {
	ops := newOperations()

	ran := 0
	ops.Enqueue(func() { ran++ })
	ops.GracefulClose()
	assert.Equal(t, 1, ran)

	ops.Enqueue(func() { ran++ })
	ops.Done()
	ops.GracefulClose()
	assert.Equal(t, 1, ran)
}
