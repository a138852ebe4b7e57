package shape

import "iter"

// Matrix is a rectangular occupancy grid indexed as m[row][col].
type Matrix [][]bool

// Parse builds a Matrix from rows of '0'/'1' characters. Any other
// character is treated as empty. Rows shorter than the first are padded.
func Parse(rows ...string) Matrix {
	if len(rows) == 0 {
		return Matrix{}
	}

	width := len(rows[0])
	m := make(Matrix, len(rows))
	for r, row := range rows {
		m[r] = make([]bool, width)
		for c := 0; c < width && c < len(row); c++ {
			m[r][c] = row[c] == '1'
		}
	}
	return m
}

// Rows returns the matrix height.
func (m Matrix) Rows() int {
	return len(m)
}

// Cols returns the matrix width.
func (m Matrix) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Equal reports whether both matrices have the same dimensions and cells.
func (m Matrix) Equal(o Matrix) bool {
	if m.Rows() != o.Rows() || m.Cols() != o.Cols() {
		return false
	}
	for r := range m {
		for c := range m[r] {
			if m[r][c] != o[r][c] {
				return false
			}
		}
	}
	return true
}

// Clone returns a deep copy.
func (m Matrix) Clone() Matrix {
	out := make(Matrix, len(m))
	for r := range m {
		out[r] = make([]bool, len(m[r]))
		copy(out[r], m[r])
	}
	return out
}

// Cells iterates over the (row, col) offsets of every set cell.
func (m Matrix) Cells() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for r := range m {
			for c, set := range m[r] {
				if !set {
					continue
				}
				if !yield(r, c) {
					return
				}
			}
		}
	}
}

// Count returns the number of set cells.
func (m Matrix) Count() int {
	n := 0
	for range m.Cells() {
		n++
	}
	return n
}

// String renders the matrix as '#'/'.' rows separated by newlines.
func (m Matrix) String() string {
	buf := make([]byte, 0, m.Rows()*(m.Cols()+1))
	for r := range m {
		if r > 0 {
			buf = append(buf, '\n')
		}
		for _, set := range m[r] {
			if set {
				buf = append(buf, '#')
			} else {
				buf = append(buf, '.')
			}
		}
	}
	return string(buf)
}

// Rotate returns m turned 90° clockwise: an h×w input becomes w×h with
// out[c][h-1-r] = in[r][c].
func Rotate(m Matrix) Matrix {
	h, w := m.Rows(), m.Cols()
	out := make(Matrix, w)
	for c := range out {
		out[c] = make([]bool, h)
	}

	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			out[c][h-1-r] = m[r][c]
		}
	}
	return out
}
