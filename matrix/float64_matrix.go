package matrix

// internal Float64 matrix representation
type Float64Matrix struct {
	nrow int
	ncol int
	data []float64
}

// NewFloat64Matrix creates a zero-filled Float64Matrix with r rows and
// c columns, it will panic if either dimension is not positive. The
// data layout is in row major order, i.e. the (i*c + j)-th element in
// the data slice is the [i, j]-th element in the matrix.
func NewFloat64Matrix(r, c int) *Float64Matrix {
	if r <= 0 || c <= 0 {
		panic(ErrBadShape)
	}
	return &Float64Matrix{
		nrow: r,
		ncol: c,
		data: make([]float64, r*c),
	}
}

// get the shape of the matrix
func (m *Float64Matrix) Shape() (int, int) {
	return m.nrow, m.ncol
}

// get the [r, c]-th element of the matrix
func (m *Float64Matrix) Get(r, c int) float64 {
	if r < 0 || r >= m.nrow || c < 0 || c >= m.ncol {
		panic(ErrIndexOutOfRange)
	}
	return m.data[r*m.ncol+c]
}

// set val to the [r, c]-th element of the matrix
func (m *Float64Matrix) Set(r, c int, val float64) {
	if r < 0 || r >= m.nrow || c < 0 || c >= m.ncol {
		panic(ErrIndexOutOfRange)
	}
	m.data[r*m.ncol+c] = val
}

// get a copy of the r-th row of the matrix
func (m *Float64Matrix) GetRow(r int) []float64 {
	if r < 0 || r >= m.nrow {
		panic(ErrIndexOutOfRange)
	}
	row := make([]float64, m.ncol)
	copy(row, m.data[r*m.ncol:(r+1)*m.ncol])
	return row
}

// get a copy of the c-th column of the matrix
func (m *Float64Matrix) GetCol(c int) []float64 {
	if c < 0 || c >= m.ncol {
		panic(ErrIndexOutOfRange)
	}
	column := make([]float64, m.nrow)
	for r := 0; r < m.nrow; r += 1 {
		column[r] = m.data[r*m.ncol+c]
	}
	return column
}
