// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

// DrainWith dequeues up to limit elements from c, invoking fn for each in
// dequeue order, and returns the number of elements consumed. Draining
// stops at the first empty observation, so the count may be less than
// limit even while producers are still active.
func DrainWith[T any](c Consumer[T], fn func(T), limit int) int {
	count := 0
	for count < limit {
		elem, err := c.Dequeue()
		if err != nil {
			break
		}
		fn(elem)
		count++
	}
	return count
}

// DrainAppend dequeues up to limit elements from c, appending them to dst
// in dequeue order. Returns the extended slice and the number of elements
// consumed.
func DrainAppend[T any](c Consumer[T], dst []T, limit int) ([]T, int) {
	count := 0
	for count < limit {
		elem, err := c.Dequeue()
		if err != nil {
			break
		}
		dst = append(dst, elem)
		count++
	}
	return dst, count
}
