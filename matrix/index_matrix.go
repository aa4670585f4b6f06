package matrix

// internal index matrix representation, holds back pointers
type IndexMatrix struct {
	nrow int
	ncol int
	data []int
}

// NewIndexMatrix creates a zero-filled IndexMatrix with r rows and c
// columns, it will panic if either dimension is not positive.
func NewIndexMatrix(r, c int) *IndexMatrix {
	if r <= 0 || c <= 0 {
		panic(ErrBadShape)
	}
	return &IndexMatrix{
		nrow: r,
		ncol: c,
		data: make([]int, r*c),
	}
}

// get the shape of the matrix
func (m *IndexMatrix) Shape() (int, int) {
	return m.nrow, m.ncol
}

// get the [r, c]-th element of the matrix
func (m *IndexMatrix) Get(r, c int) int {
	if r < 0 || r >= m.nrow || c < 0 || c >= m.ncol {
		panic(ErrIndexOutOfRange)
	}
	return m.data[r*m.ncol+c]
}

// set val to the [r, c]-th element of the matrix
func (m *IndexMatrix) Set(r, c int, val int) {
	if r < 0 || r >= m.nrow || c < 0 || c >= m.ncol {
		panic(ErrIndexOutOfRange)
	}
	m.data[r*m.ncol+c] = val
}

// get the r-th row of the matrix
func (m *IndexMatrix) GetRow(r int) []int {
	if r < 0 || r >= m.nrow {
		panic(ErrIndexOutOfRange)
	}

	var row []int
	for c := 0; c < m.ncol; c += 1 {
		row = append(row, m.Get(r, c))
	}
	return row
}

// get the c-th column of the matrix
func (m *IndexMatrix) GetCol(c int) []int {
	if c < 0 || c >= m.ncol {
		panic(ErrIndexOutOfRange)
	}

	var column []int
	for r := 0; r < m.nrow; r += 1 {
		column = append(column, m.Get(r, c))
	}
	return column
}
